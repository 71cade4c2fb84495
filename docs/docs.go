// Package docs registers the OpenAPI document served at /swagger/doc.json.
// It is kept in step with the godoc annotations on the HTTP handlers; paths
// are relative to BasePath.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Xalgrow HR"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Authenticate with username and password to receive an access and refresh token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenPair"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Create an account. No tokens are issued; log in afterwards.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Register",
                "parameters": [
                    {
                        "description": "Account details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.RegisterRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.AccountSummary"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Username or email taken", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "description": "Exchange an (expired) access token and the current refresh token for a new pair. The presented refresh token stops working.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Refresh tokens",
                "parameters": [
                    {
                        "description": "Current tokens",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.RefreshRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenPair"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Invalid token", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Revoke the account's refresh token",
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Identity carried by the presented access token",
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AuthContext"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/protected/endpoint": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Succeeds only for PowerUser accounts",
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "PowerUser check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "Insufficient permissions", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/departments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Departments"],
                "summary": "List departments",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Department"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Departments"],
                "summary": "Create department",
                "parameters": [
                    {"description": "Department", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.DepartmentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Department"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "Insufficient permissions", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/departments/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Departments"],
                "summary": "Get department",
                "parameters": [
                    {"type": "integer", "description": "Department ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Department"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Departments"],
                "summary": "Update department",
                "parameters": [
                    {"type": "integer", "description": "Department ID", "name": "id", "in": "path", "required": true},
                    {"description": "Department", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.DepartmentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Department"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Employees of the department stay, without a department",
                "tags": ["Departments"],
                "summary": "Delete department",
                "parameters": [
                    {"type": "integer", "description": "Department ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/employees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Employees"],
                "summary": "List employees",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Employee"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Employees"],
                "summary": "Create employee",
                "parameters": [
                    {"description": "Employee", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.EmployeeInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Employee"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "403": {"description": "Insufficient permissions", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Employees"],
                "summary": "Get employee",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Employee"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Employees"],
                "summary": "Update employee",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true},
                    {"description": "Employee", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.EmployeeInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Employee"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Employees"],
                "summary": "Delete employee",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns the health status of the API",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}}
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Pings PostgreSQL and, when configured, Redis",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusResponse"}},
                    "503": {"description": "A backend is unreachable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the current API version",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Get API version",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VersionResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.AccountSummary": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "role": {"$ref": "#/definitions/domain.Role"},
                "username": {"type": "string"}
            }
        },
        "domain.AuthContext": {
            "type": "object",
            "properties": {
                "account_id": {"type": "integer"},
                "role": {"$ref": "#/definitions/domain.Role"},
                "username": {"type": "string"}
            }
        },
        "domain.Department": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string", "example": "Engineering"}
            }
        },
        "domain.DepartmentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Engineering"}
            }
        },
        "domain.Employee": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "department_id": {"type": "integer"},
                "email": {"type": "string"},
                "hire_date": {"type": "string"},
                "id": {"type": "integer"},
                "last_name": {"type": "string"},
                "name": {"type": "string"},
                "phone_number": {"type": "string"},
                "position": {"type": "string"},
                "salary": {"type": "number"},
                "username": {"type": "string"}
            }
        },
        "domain.EmployeeInput": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "department_id": {"type": "integer"},
                "email": {"type": "string", "example": "john.doe@example.com"},
                "hire_date": {"type": "string"},
                "last_name": {"type": "string", "example": "Doe"},
                "name": {"type": "string", "example": "John"},
                "phone_number": {"type": "string"},
                "position": {"type": "string", "example": "Developer"},
                "salary": {"type": "number"},
                "username": {"type": "string"}
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "s3cret-pass"},
                "username": {"type": "string", "example": "jdoe"}
            }
        },
        "domain.RefreshRequest": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"}
            }
        },
        "domain.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "jdoe@example.com"},
                "password": {"type": "string", "example": "s3cret-pass"},
                "username": {"type": "string", "example": "jdoe"}
            }
        },
        "domain.Role": {
            "type": "string",
            "enum": ["User", "PowerUser", "HRManager"],
            "x-enum-varnames": ["RoleUser", "RolePowerUser", "RoleHRManager"]
        },
        "domain.TokenPair": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_at": {"type": "string"},
                "refresh_token": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "description": "API error response",
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid request body"}
            }
        },
        "http.MessageResponse": {
            "description": "Message response",
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Only PowerUser can access this endpoint"}
            }
        },
        "http.StatusResponse": {
            "description": "Simple status response",
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "http.VersionResponse": {
            "description": "API version response",
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "1.0.0"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Bearer token. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Xalgrow HR API",
	Description:      "Authentication and HR records API. Access tokens are short lived JWTs; refresh tokens rotate on every use.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
