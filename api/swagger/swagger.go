package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "OCC Admission Gateway",
        "description": "Guidance-office gateway for browsing admission exam results",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Exams", "description": "Exam catalogue and lifecycle"},
        {"name": "Results", "description": "Filtered result browser"},
        {"name": "Questions", "description": "Question statistics analysis"},
        {"name": "Preferences", "description": "Per-user browser preferences"},
        {"name": "Reports", "description": "Printable and downloadable reports"},
        {"name": "Cleanup", "description": "Retention cleanup"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List exams",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["draft", "published", "archived"]},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Exams"],
                "summary": "Create exam",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams/{id}/status": {
            "patch": {
                "tags": ["Exams"],
                "summary": "Set exam status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetExamStatusRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/exams/{id}/archive": {
            "post": {
                "tags": ["Exams"],
                "summary": "Archive exam",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/results": {
            "get": {
                "tags": ["Results"],
                "summary": "Browse exam results",
                "parameters": [
                    {"name": "exam_ref", "in": "query", "type": "string"},
                    {"name": "date_from", "in": "query", "type": "string"},
                    {"name": "date_to", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "min_score", "in": "query", "type": "number"},
                    {"name": "max_score", "in": "query", "type": "number"},
                    {"name": "outcome", "in": "query", "type": "string", "enum": ["passed", "failed"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/{id}": {
            "delete": {
                "tags": ["Results"],
                "summary": "Delete exam result",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/questions": {
            "get": {
                "tags": ["Questions"],
                "summary": "Browse question statistics",
                "parameters": [
                    {"name": "exam_ref", "in": "query", "type": "string"},
                    {"name": "min_attempts", "in": "query", "type": "integer"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "min_wrong_pct", "in": "query", "type": "number"},
                    {"name": "max_wrong_pct", "in": "query", "type": "number"},
                    {"name": "speed", "in": "query", "type": "string", "enum": ["normal", "slow", "very_slow"]},
                    {"name": "difficulty", "in": "query", "type": "string", "enum": ["easy", "moderate", "hard"]},
                    {"name": "time_threshold", "in": "query", "type": "number"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/preferences/{feature}": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Get view preference",
                "parameters": [
                    {"name": "feature", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Preferences"],
                "summary": "Save view preference",
                "parameters": [
                    {"name": "feature", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SavePreferenceRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            },
            "delete": {
                "tags": ["Preferences"],
                "summary": "Reset view preference",
                "parameters": [
                    {"name": "feature", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Render result report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RenderReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/reports/questions": {
            "post": {
                "tags": ["Reports"],
                "summary": "Render question analysis report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RenderQuestionReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/reports/download": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download stored report",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        },
        "/cleanup/preview": {
            "get": {
                "tags": ["Cleanup"],
                "summary": "Preview stale-data purge",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cleanup/purge": {
            "post": {
                "tags": ["Cleanup"],
                "summary": "Purge stale data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateExamRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "subject": {"type": "string"},
                "question_count": {"type": "integer"},
                "duration_mins": {"type": "integer"}
            },
            "required": ["title", "subject", "question_count", "duration_mins"]
        },
        "SetExamStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["draft", "published"]}
            },
            "required": ["status"]
        },
        "SavePreferenceRequest": {
            "type": "object",
            "properties": {
                "filters": {"type": "object"},
                "page_size": {"type": "integer"}
            },
            "required": ["page_size"]
        },
        "RenderReportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["html", "csv", "pdf"]},
                "title": {"type": "string"},
                "exam_ref": {"type": "string"},
                "date_from": {"type": "string"},
                "date_to": {"type": "string"},
                "search": {"type": "string"},
                "min_score": {"type": "string"},
                "max_score": {"type": "string"},
                "outcome": {"type": "string", "enum": ["passed", "failed"]}
            },
            "required": ["format"]
        },
        "RenderQuestionReportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["html", "csv", "pdf"]},
                "title": {"type": "string"},
                "exam_ref": {"type": "string"},
                "min_attempts": {"type": "integer"},
                "category": {"type": "string"},
                "search": {"type": "string"},
                "min_wrong_pct": {"type": "string"},
                "max_wrong_pct": {"type": "string"},
                "speed": {"type": "string", "enum": ["normal", "slow", "very_slow"]},
                "difficulty": {"type": "string", "enum": ["easy", "moderate", "hard"]},
                "time_threshold": {"type": "number"}
            },
            "required": ["format"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
