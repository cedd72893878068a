package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Progress Tracker API",
        "description": "Roster ingestion, progress classification and bulk report notifications",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Roster", "description": "Session roster and classification"},
        {"name": "Notifications", "description": "Bulk email / WhatsApp dispatch"},
        {"name": "Observability", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Observability"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Observability"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/roster/upload": {
            "post": {
                "tags": ["Roster"],
                "summary": "Upload a student progress workbook",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Normalized roster", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unparseable workbook"}
                }
            }
        },
        "/api/v1/roster": {
            "get": {
                "tags": ["Roster"],
                "summary": "Current session roster",
                "responses": {
                    "200": {"description": "Roster", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Roster"],
                "summary": "Discard the session roster",
                "responses": {
                    "204": {"description": "Reset"}
                }
            }
        },
        "/api/v1/roster/students": {
            "post": {
                "tags": ["Roster"],
                "summary": "Add a student record",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/SaveStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created record"}
                }
            }
        },
        "/api/v1/roster/students/{id}": {
            "put": {
                "tags": ["Roster"],
                "summary": "Replace a student record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/SaveStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replaced record"},
                    "404": {"description": "Unknown student"}
                }
            }
        },
        "/api/v1/roster/thresholds": {
            "get": {
                "tags": ["Roster"],
                "summary": "Active classifier thresholds",
                "responses": {
                    "200": {"description": "Thresholds"}
                }
            },
            "put": {
                "tags": ["Roster"],
                "summary": "Replace thresholds and reclassify",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/Thresholds"}}
                ],
                "responses": {
                    "200": {"description": "Reclassified roster"}
                }
            }
        },
        "/api/v1/roster/export": {
            "get": {
                "tags": ["Roster"],
                "summary": "Download the classified roster",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document"},
                    "404": {"description": "Empty roster"}
                }
            }
        },
        "/api/v1/notifications/send": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Dispatch report notifications to selected students",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/SendNotificationsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Aggregate result with per-recipient breakdown"},
                    "422": {"description": "No valid recipients"}
                }
            }
        }
    },
    "definitions": {
        "Thresholds": {
            "type": "object",
            "properties": {
                "no_progress": {"type": "integer"},
                "in_progress": {"type": "integer"}
            }
        },
        "SaveStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "completed_chapters": {"type": "integer"},
                "total_chapters": {"type": "integer"},
                "marks": {"type": "integer"},
                "max_marks": {"type": "integer"},
                "skipped": {"type": "integer"},
                "ocs1": {"type": "string"},
                "ocs2": {"type": "string"},
                "ocs3": {"type": "string"}
            }
        },
        "SendNotificationsRequest": {
            "type": "object",
            "properties": {
                "student_ids": {"type": "array", "items": {"type": "string"}},
                "channel": {"type": "string", "enum": ["email", "whatsapp"]},
                "dates": {
                    "type": "object",
                    "properties": {
                        "ocs1": {"type": "string"},
                        "ocs2": {"type": "string"},
                        "ocs3": {"type": "string"}
                    }
                }
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
