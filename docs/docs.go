// Package docs registers the OpenAPI document served at /api-docs.
//
// This file is maintained by hand, not generated by swag init. Keep it in step
// with the @Summary/@Router annotations on the handlers.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            }
        },
        "/auth/google": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login with Google",
                "parameters": [
                    {"description": "Google ID token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/googleLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update display name",
                "parameters": [
                    {"description": "Profile fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/updateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            }
        },
        "/users/me/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Change password",
                "parameters": [
                    {"description": "Current and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/changePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            }
        },
        "/movies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List movies",
                "parameters": [
                    {"type": "string", "description": "Only movies created by this user id", "name": "createdBy", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Movie"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Add a movie",
                "parameters": [
                    {"description": "Movie details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createMovieRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            }
        },
        "/movies/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get a movie",
                "parameters": [
                    {"type": "string", "description": "_id or movieId", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Movie"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Update a movie",
                "parameters": [
                    {"type": "string", "description": "_id or movieId", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/updateMovieRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Delete a movie",
                "parameters": [
                    {"type": "string", "description": "_id or movieId", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/messageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "Movie": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "movieId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "releaseDate": {"type": "string", "format": "date-time"},
                "genre": {"type": "array", "items": {"type": "string"}},
                "director": {"type": "string"},
                "cast": {"type": "array", "items": {"type": "string"}},
                "rating": {"type": "number", "minimum": 0, "maximum": 10},
                "createdBy": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "googleId": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "registerRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "googleLoginRequest": {
            "type": "object",
            "required": ["credential"],
            "properties": {
                "credential": {"type": "string"}
            }
        },
        "updateProfileRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        },
        "changePasswordRequest": {
            "type": "object",
            "required": ["newPassword"],
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string", "minLength": 6}
            }
        },
        "createMovieRequest": {
            "type": "object",
            "required": ["movieId", "title", "description", "releaseDate", "genre", "director", "cast", "rating"],
            "properties": {
                "movieId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "releaseDate": {"type": "string", "example": "1999-03-31"},
                "genre": {"type": "array", "items": {"type": "string"}},
                "director": {"type": "string"},
                "cast": {"type": "array", "items": {"type": "string"}},
                "rating": {"type": "number", "minimum": 0, "maximum": 10}
            }
        },
        "updateMovieRequest": {
            "type": "object",
            "properties": {
                "movieId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "releaseDate": {"type": "string", "example": "1999-03-31"},
                "genre": {"type": "array", "items": {"type": "string"}},
                "director": {"type": "string"},
                "cast": {"type": "array", "items": {"type": "string"}},
                "rating": {"type": "number", "minimum": 0, "maximum": 10}
            }
        },
        "tokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token, optionally prefixed with \"Bearer \".",
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
	Title:            "Movie Catalog API",
	Description:      "Movie catalog with password and Google login, JWT sessions and owner-scoped movie CRUD.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
