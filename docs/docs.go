// Package docs registers the swagger specification served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/attendance/check-in": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["attendance"],
                "summary": "Check in",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/attendance/check-out": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["attendance"],
                "summary": "Check out",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/attendance/qr-code": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["attendance"],
                "summary": "Office QR code",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/attendance-requests": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["attendance-requests"],
                "summary": "Submit attendance request",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/rewards": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rewards"],
                "summary": "List reward funds",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/performance/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["performance"],
                "summary": "My performance score",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/admin/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Admin dashboard",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "LawDesk ERP API",
	Description:      "Attendance and reward ledger service for the office ERP",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
