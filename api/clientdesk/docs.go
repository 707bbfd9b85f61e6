// Package clientdesk holds the Swagger document served at /swagger/.
//
// Regenerate with: swag init -g internal/clientdesk/http/router.go -o api/clientdesk
package clientdesk

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/clientdesk"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "description": "Liveness probe endpoint returning basic service health status, uptime, and version information\nThis endpoint always returns 200 OK if the service is running",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {"$ref": "#/definitions/clientsdk.HealthResponse"}
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe endpoint returning service health status and checks for critical dependencies",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks",
                        "schema": {"$ref": "#/definitions/clientsdk.HealthResponse"}
                    },
                    "503": {
                        "description": "status, uptime, version, checks - service not ready",
                        "schema": {"$ref": "#/definitions/clientsdk.HealthResponse"}
                    }
                }
            }
        },
        "/v1/clients/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the client the session token was issued to.",
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Current Client Endpoint",
                "responses": {
                    "200": {
                        "description": "id, name, email, created_at",
                        "schema": {"$ref": "#/definitions/clientsdk.ClientResponse"}
                    },
                    "401": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    },
                    "404": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/clients/signin": {
            "post": {
                "description": "Authenticate with email and password and receive a session token.\nAn email with no account answers 204 with an empty body. A wrong password answers 403.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Client Signin Endpoint",
                "parameters": [
                    {
                        "description": "email, password",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/clientsdk.SigninRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "id, email, name, token",
                        "schema": {"$ref": "#/definitions/clientsdk.SigninResponse"}
                    },
                    "204": {"description": "no account for this email"},
                    "400": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    },
                    "403": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    },
                    "429": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/clients/signup": {
            "post": {
                "description": "Create a client account. The email must not already be registered.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Client Signup Endpoint",
                "parameters": [
                    {
                        "description": "name, email, password",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/clientsdk.SignupRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "id, name, email, created_at",
                        "schema": {"$ref": "#/definitions/clientsdk.ClientResponse"}
                    },
                    "400": {
                        "description": "code, message, details",
                        "schema": {"$ref": "#/definitions/clientsdk.ValidationErrorResponse"}
                    },
                    "409": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    },
                    "429": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {"$ref": "#/definitions/clientsdk.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "clientsdk.ClientResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "clientsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"description": "Error is the error code (e.g. \"email_taken\", \"invalid_credentials\")", "type": "string"},
                "error_description": {"description": "ErrorDescription is a human-readable description of the error", "type": "string"}
            }
        },
        "clientsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"description": "Database indicates the store connection status", "type": "string"},
                "rate_limiter": {"description": "RateLimiter is the shared limiter backend status, omitted when the\nlimiter is in-process", "type": "string"}
            }
        },
        "clientsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"description": "Checks is only populated by /readyz", "allOf": [{"$ref": "#/definitions/clientsdk.HealthChecks"}]},
                "status": {"description": "Status indicates the overall health status (\"ok\" or \"degraded\")", "type": "string"},
                "uptime": {"description": "Uptime is the service uptime duration as a string (e.g., \"1h23m45s\")", "type": "string"},
                "version": {"description": "Version is the service version string", "type": "string"}
            }
        },
        "clientsdk.SigninRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "clientsdk.SigninResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "token": {"description": "Token is the signed session token (HS256 JWT)", "type": "string"}
            }
        },
        "clientsdk.SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "clientsdk.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"description": "Code is always \"validation_error\"", "type": "string"},
                "details": {"description": "Details maps field names to the reason they were rejected", "type": "object", "additionalProperties": {"type": "string"}},
                "message": {"description": "Message is a human-readable error message", "type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token from signin. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Clientdesk API",
	Description:      "Client account signup and signin. Successful signin returns an HS256 signed session token.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
