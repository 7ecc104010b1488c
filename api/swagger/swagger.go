package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "KelasKal API",
        "description": "Class schedule and calendar expansion service",
        "version": "2.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Calendar", "description": "Recurrence documents and synthesized calendars"}
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
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/classes/{id}/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Synthesized calendar for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "end_date", "in": "query", "type": "string", "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No schedule stored for the class"}
                }
            }
        },
        "/classes/{id}/calendar/export": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Export a class calendar",
                "produces": ["text/calendar", "text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["ics", "csv", "pdf"], "default": "ics"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Rendered calendar file"},
                    "400": {"description": "Unsupported format or export disabled"}
                }
            }
        },
        "/classes/{id}/schedule": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Store a recurrence document for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Normalized document", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            },
            "delete": {
                "tags": ["Calendar"],
                "summary": "Delete the stored schedule for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "No schedule stored for the class"}
                }
            }
        },
        "/calendar/preview": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Expand a recurrence document without storing it",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PreviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "Synthesized events", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List stored class schedules",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SaveScheduleRequest": {
            "type": "object",
            "required": ["schedule_data"],
            "properties": {
                "name": {"type": "string"},
                "schedule_data": {"type": "object", "description": "Raw recurrence document, normalized server side"},
                "stop_dates": {"type": "array", "items": {"type": "string"}},
                "restart_dates": {"type": "array", "items": {"type": "string"}},
                "event_types": {"type": "array", "items": {"type": "string"}},
                "event_descriptions": {"type": "array", "items": {"type": "string"}},
                "event_dates": {"type": "array", "items": {"type": "string"}},
                "event_statuses": {"type": "array", "items": {"type": "string"}},
                "event_notes": {"type": "array", "items": {"type": "string"}}
            }
        },
        "PreviewRequest": {
            "type": "object",
            "required": ["schedule_data"],
            "properties": {
                "class_id": {"type": "string"},
                "schedule_data": {"type": "object"}
            }
        },
        "CalendarEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "category": {"type": "string"},
                "title": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "all_day": {"type": "boolean"},
                "display": {"type": "string"},
                "labels": {"type": "array", "items": {"type": "string"}},
                "notes": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
