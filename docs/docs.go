// Package docs registers the Swagger document of the API with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/{resource}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "List the caller's records",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"$ref": "#/parameters/user"},
                    {"type": "string", "description": "Related id (projeto_id, curso_id, habito_id)", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "400": {"$ref": "#/responses/BadRequest"},
                    "500": {"$ref": "#/responses/StoreFailure"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Create a record",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"$ref": "#/parameters/user"},
                    {"description": "Record fields", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"$ref": "#/responses/BadRequest"},
                    "409": {"$ref": "#/responses/Conflict"},
                    "500": {"$ref": "#/responses/StoreFailure"}
                }
            }
        },
        "/{resource}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Get one of the caller's records",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"$ref": "#/parameters/id"},
                    {"$ref": "#/parameters/user"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"$ref": "#/responses/BadRequest"},
                    "404": {"$ref": "#/responses/NotFound"},
                    "500": {"$ref": "#/responses/StoreFailure"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Partially update a record",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"$ref": "#/parameters/id"},
                    {"$ref": "#/parameters/user"},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"$ref": "#/responses/BadRequest"},
                    "404": {"$ref": "#/responses/NotFound"},
                    "500": {"$ref": "#/responses/StoreFailure"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Delete a record",
                "parameters": [
                    {"$ref": "#/parameters/resource"},
                    {"$ref": "#/parameters/id"},
                    {"$ref": "#/parameters/user"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteResponse"}},
                    "400": {"$ref": "#/responses/BadRequest"},
                    "404": {"$ref": "#/responses/NotFound"},
                    "500": {"$ref": "#/responses/StoreFailure"}
                }
            }
        }
    },
    "parameters": {
        "resource": {
            "type": "string",
            "enum": ["tasks", "projects", "courses", "lessons", "books", "notes", "habits", "habit-logs", "goals"],
            "description": "Resource kind",
            "name": "resource",
            "in": "path",
            "required": true
        },
        "id": {"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true},
        "user": {"type": "string", "description": "Caller identity", "name": "X-User-Id", "in": "header", "required": true}
    },
    "responses": {
        "BadRequest": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
        "NotFound": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
        "Conflict": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
        "StoreFailure": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "dto.DeleteResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "app": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Productivity API",
	Description:      "Owner-scoped CRUD for tasks, projects, courses, lessons, books, notes, habits, habit logs and goals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
