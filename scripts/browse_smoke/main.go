// Command browse_smoke exercises the gateway's browse endpoints with a set
// of canned filter combinations and checks the response envelope's
// invariants: valid pagination, no item beyond the page size, and filter
// results consistent with the query. It is meant to run against a staging
// deployment after every release.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

type check struct {
	Name  string
	Path  string
	Query url.Values
}

type envelope struct {
	Data       []map[string]interface{} `json:"data"`
	Error      map[string]interface{}   `json:"error"`
	Pagination *struct {
		Page       int `json:"page"`
		PageSize   int `json:"page_size"`
		TotalCount int `json:"total_count"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
	Meta map[string]interface{} `json:"meta"`
}

func main() {
	var (
		base    string
		token   string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "gateway base URL")
	flag.StringVar(&token, "token", os.Getenv("SMOKE_TOKEN"), "bearer token for the gateway")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	if token == "" {
		log.Fatal("a bearer token is required (-token or SMOKE_TOKEN)")
	}

	checks := []check{
		{Name: "exams default page", Path: "/exams", Query: url.Values{}},
		{Name: "exams published only", Path: "/exams", Query: url.Values{"status": {"published"}}},
		{Name: "results default page", Path: "/results", Query: url.Values{}},
		{Name: "results failed outcome", Path: "/results", Query: url.Values{"outcome": {"failed"}}},
		{Name: "results score band", Path: "/results", Query: url.Values{"min_score": {"50"}, "max_score": {"90"}}},
		{Name: "results show all", Path: "/results", Query: url.Values{"page_size": {"-1"}}},
		{Name: "results page past end", Path: "/results", Query: url.Values{"page": {"9999"}, "page_size": {"10"}}},
		{Name: "questions default page", Path: "/questions", Query: url.Values{}},
		{Name: "questions live threshold", Path: "/questions", Query: url.Values{"time_threshold": {"40"}, "speed": {"slow"}}},
	}

	client := &http.Client{Timeout: timeout}
	failures := 0
	for _, chk := range checks {
		if err := run(client, base, token, chk); err != nil {
			failures++
			fmt.Printf("[FAIL] %s: %v\n", chk.Name, err)
			continue
		}
		fmt.Printf("[ OK ] %s\n", chk.Name)
	}

	fmt.Printf("%d/%d checks passed\n", len(checks)-failures, len(checks))
	if failures > 0 {
		os.Exit(1)
	}
}

func run(client *http.Client, base, token string, chk check) error {
	target := strings.TrimRight(base, "/") + chk.Path
	if len(chk.Query) > 0 {
		target += "?" + chk.Query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	return verify(chk, env)
}

func verify(chk check, env envelope) error {
	if env.Error != nil {
		return fmt.Errorf("unexpected error payload: %v", env.Error)
	}
	p := env.Pagination
	if p == nil {
		return fmt.Errorf("missing pagination")
	}
	if p.Page < 1 || p.Page > p.TotalPages {
		return fmt.Errorf("page %d outside [1, %d]", p.Page, p.TotalPages)
	}
	if p.PageSize > 0 && len(env.Data) > p.PageSize {
		return fmt.Errorf("%d items exceed page size %d", len(env.Data), p.PageSize)
	}
	if p.PageSize == -1 && len(env.Data) != p.TotalCount {
		return fmt.Errorf("show-all returned %d of %d items", len(env.Data), p.TotalCount)
	}

	if outcome := chk.Query.Get("outcome"); outcome != "" {
		want := outcome == "passed"
		for _, item := range env.Data {
			if passed, ok := item["passed"].(bool); ok && passed != want {
				return fmt.Errorf("item %v contradicts outcome=%s", item["id"], outcome)
			}
		}
	}
	if speed := chk.Query.Get("speed"); speed != "" {
		for _, item := range env.Data {
			if got, ok := item["speed"].(string); ok && got != speed {
				return fmt.Errorf("item %v classified %s under speed=%s", item["id"], got, speed)
			}
		}
	}
	return nil
}
