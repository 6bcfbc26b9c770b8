package export

// Dataset is the tabular form every report renderer consumes. Rows are
// keyed by header name so renderers never depend on column order beyond
// Headers itself.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}
