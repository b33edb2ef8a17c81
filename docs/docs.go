// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/enhance-text": {
            "post": {
                "description": "Ask the language model to restate receipt OCR text as JSON, then repair and validate the reply",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["receipts"],
                "summary": "Structure OCR text",
                "parameters": [{"description": "OCR text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.EnhanceTextRequest"}}],
                "responses": {
                    "200": {"description": "Structured receipt", "schema": {"$ref": "#/definitions/domain.ReceiptRecord"}},
                    "400": {"description": "Empty text", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "429": {"description": "Generation rate limited", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Reply could not be parsed", "schema": {"$ref": "#/definitions/repair.Diagnostic"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/test-cleanup": {
            "post": {
                "description": "Run the repair pipeline over a raw reply without calling the model",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["receipts"],
                "summary": "Repair a model reply",
                "parameters": [{"description": "Raw reply", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CleanupRequest"}}],
                "responses": {
                    "200": {"description": "Parsed record and cleaned text", "schema": {"$ref": "#/definitions/handler.CleanupOutput"}},
                    "400": {"description": "rawJson missing", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Reply could not be parsed", "schema": {"$ref": "#/definitions/repair.Diagnostic"}}
                }
            }
        },
        "/validate": {
            "post": {
                "description": "Binds an unused code to the device, or confirms the device already holds it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["licenses"],
                "summary": "Activate a license on a device",
                "parameters": [{"description": "Code and device", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ValidateLicenseRequest"}}],
                "responses": {
                    "200": {"description": "Activation outcome", "schema": {"$ref": "#/definitions/service.ActivationResult"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Unknown code", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/admin-login": {
            "post": {
                "description": "Compare the admin password and issue a session token for admin routes",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin login",
                "parameters": [{"description": "Admin password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AdminLoginRequest"}}],
                "responses": {
                    "200": {"description": "Session token", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Password missing", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "401": {"description": "Wrong password", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/admin/generate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Create a batch of unused license codes (admin only)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["licenses"],
                "summary": "Generate license codes",
                "parameters": [{"description": "Batch size and validity", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GenerateLicensesRequest"}}],
                "responses": {
                    "201": {"description": "Licenses created", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/admin/licenses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "List licenses with their expiry and derived status (admin only)",
                "produces": ["application/json"],
                "tags": ["licenses"],
                "summary": "List licenses",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Limit for pagination (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "List of licenses", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/admin/licenses/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Download every license as an XLSX workbook (admin only)",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["licenses"],
                "summary": "Export licenses",
                "responses": {
                    "200": {"description": "XLSX workbook", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Product": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "code": {"type": "string"},
                "quantity": {"type": "integer"},
                "price": {"type": "string", "example": "1.05"}
            }
        },
        "domain.ReceiptRecord": {
            "type": "object",
            "properties": {
                "imageQuality": {"type": "string", "example": "Good quality image"},
                "storeName": {"type": "string"},
                "storePhone": {"type": "string"},
                "storeAddress": {"type": "string"},
                "purchaseDate": {"type": "string", "example": "04/25/2024"},
                "purchaseTime": {"type": "string", "example": "10:30 PM"},
                "totalPaid": {"type": "string", "example": "27.40"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}}
            }
        },
        "repair.Diagnostic": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "rawText": {"type": "string"},
                "cleanedJsonString": {"type": "string"}
            }
        },
        "service.ActivationResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.AdminLoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {"password": {"type": "string"}}
        },
        "handler.CleanupOutput": {
            "type": "object",
            "properties": {
                "parsed": {"$ref": "#/definitions/domain.ReceiptRecord"},
                "cleaned": {"type": "string"}
            }
        },
        "handler.CleanupRequest": {
            "type": "object",
            "properties": {"rawJson": {"type": "string"}}
        },
        "handler.EnhanceTextRequest": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/handler.APIError"}
            }
        },
        "handler.GenerateLicensesRequest": {
            "type": "object",
            "required": ["count", "durationDays"],
            "properties": {
                "count": {"type": "integer", "example": 50},
                "durationDays": {"type": "integer", "example": 365}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "offset": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "handler.ValidateLicenseRequest": {
            "type": "object",
            "required": ["code", "deviceId"],
            "properties": {
                "code": {"type": "string", "example": "9F86D081"},
                "deviceId": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Admin session token: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "ticketscan API",
	Description:      "Receipt OCR structuring and license activation service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
