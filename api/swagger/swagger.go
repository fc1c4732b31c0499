package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Planificador de Horarios API",
        "description": "REST gateway proxying subject CRUD and login to Backendless",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "System", "description": "API descriptor and health"},
        {"name": "Authentication", "description": "Remote-store login"},
        {"name": "Subjects", "description": "Academic subject CRUD"}
    ],
    "paths": {
        "/": {
            "get": {
                "tags": ["System"],
                "summary": "API descriptor",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "parameters": [
                    {"name": "user-token", "in": "header", "type": "string", "required": true},
                    {"name": "pageSize", "in": "query", "type": "integer", "default": 50},
                    {"name": "offset", "in": "query", "type": "integer", "default": 0},
                    {"name": "code", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Paginated subjects", "schema": {"$ref": "#/definitions/SubjectPage"}},
                    "401": {"description": "Missing or stale token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "parameters": [
                    {"name": "user-token", "in": "header", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Get subject by id",
                "parameters": [
                    {"name": "user-token", "in": "header", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Subjects"],
                "summary": "Update subject (partial)",
                "parameters": [
                    {"name": "user-token", "in": "header", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectUpdate"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject",
                "parameters": [
                    {"name": "user-token", "in": "header", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "login": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["login", "password"]
        },
        "SubjectCreate": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "kind": {"type": "string", "enum": ["class", "exam", "task", "project", "other"], "default": "class"},
                "weeklyLoadHours": {"type": "integer", "minimum": 0, "default": 4}
            },
            "required": ["name", "code"]
        },
        "SubjectUpdate": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "kind": {"type": "string", "enum": ["class", "exam", "task", "project", "other"]},
                "weeklyLoadHours": {"type": "integer", "minimum": 0}
            }
        },
        "Subject": {
            "type": "object",
            "properties": {
                "objectId": {"type": "string"},
                "name": {"type": "string"},
                "code": {"type": "string"},
                "kind": {"type": "string"},
                "weeklyLoadHours": {"type": "integer"},
                "created": {"type": "integer"},
                "updated": {"type": "integer"}
            }
        },
        "SubjectPage": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "count": {"type": "integer"},
                "offset": {"type": "integer"},
                "results": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Subject"}
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"}
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
