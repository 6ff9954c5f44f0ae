// Package docs registers the OpenAPI document served at /swagger/.
// Regenerate the full path list with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/events/{eventID}/reconcile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Import the event's sign-up sheet",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true},
                    {"description": "Optional sheet override", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/controllers.ReconcileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.ReconcileRequest": {
            "type": "object",
            "properties": {"sheet_id": {"type": "string"}}
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "College Events API",
	Description:      "Event, venue, participant and registration management with Google Sheets sign-up import.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
