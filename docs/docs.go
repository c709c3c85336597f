// Package docs holds the OpenAPI description served under /swagger.
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
				"tags": [
					"auth"
				],
				"summary": "Register a new account",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.User"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.registerRequest"
						}
					}
				]
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Exchange credentials for a bearer token",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.sessionResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.loginRequest"
						}
					}
				]
			}
		},
		"/login": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Sign in as the fixed development user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.sessionResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				}
			}
		},
		"/auth/user": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.User"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/profile": {
			"patch": {
				"tags": [
					"auth"
				],
				"summary": "Change the display name",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.User"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.updateProfileRequest"
						}
					}
				]
			}
		},
		"/goals": {
			"get": {
				"tags": [
					"goals"
				],
				"summary": "List the caller's goals, newest first",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.Goal"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"goals"
				],
				"summary": "Create a goal and its weekly schedule",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Goal"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.createGoalRequest"
						}
					}
				]
			}
		},
		"/goals/{id}": {
			"get": {
				"tags": [
					"goals"
				],
				"summary": "Fetch one goal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Goal"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Goal ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"delete": {
				"tags": [
					"goals"
				],
				"summary": "Delete a goal with its weeks",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Goal ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/goals/{id}/progress": {
			"get": {
				"tags": [
					"progress"
				],
				"summary": "Weekly schedule of a goal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/domain.WeekProgress"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Goal ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/goals/{id}/progress/{weekNumber}": {
			"patch": {
				"tags": [
					"progress"
				],
				"summary": "Mark a week as saved or undo it",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.WeekProgress"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Goal ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Week number",
						"name": "weekNumber",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.toggleWeekRequest"
						}
					}
				]
			}
		},
		"/goals/{id}/stats": {
			"get": {
				"tags": [
					"progress"
				],
				"summary": "Aggregated progress of a goal",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.ProgressStats"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Goal ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/goals/{id}/deposits": {
			"post": {
				"tags": [
					"progress"
				],
				"summary": "Record a deposit against the first pending week with that amount",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.WeekProgress"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Goal ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/http.depositRequest"
						}
					}
				]
			}
		}
	},
	"definitions": {
		"domain.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"displayName": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"domain.Goal": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"imageUrl": {
					"type": "string"
				},
				"language": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"targetAmount": {
					"type": "integer"
				},
				"startingAmount": {
					"type": "integer"
				},
				"totalWeeks": {
					"type": "integer"
				},
				"genre": {
					"type": "string"
				},
				"reminderDay": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"completedAt": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"domain.WeekProgress": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"goalId": {
					"type": "string"
				},
				"weekNumber": {
					"type": "integer"
				},
				"amount": {
					"type": "integer"
				},
				"isCompleted": {
					"type": "boolean"
				},
				"completedAt": {
					"type": "string"
				}
			}
		},
		"domain.ProgressStats": {
			"type": "object",
			"properties": {
				"goalId": {
					"type": "string"
				},
				"totalWeeks": {
					"type": "integer"
				},
				"targetAmount": {
					"type": "integer"
				},
				"currency": {
					"type": "string"
				},
				"completedCount": {
					"type": "integer"
				},
				"pendingCount": {
					"type": "integer"
				},
				"totalSaved": {
					"type": "integer"
				},
				"remaining": {
					"type": "integer"
				},
				"progressPercentage": {
					"type": "number"
				},
				"nextWeek": {
					"type": "integer"
				},
				"nextAmount": {
					"type": "integer"
				},
				"availableAmounts": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				},
				"isFinished": {
					"type": "boolean"
				}
			}
		},
		"http.registerRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"displayName": {
					"type": "string"
				}
			}
		},
		"http.loginRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"http.updateProfileRequest": {
			"type": "object",
			"required": [
				"name"
			],
			"properties": {
				"name": {
					"type": "string"
				}
			}
		},
		"http.sessionResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/domain.User"
				}
			}
		},
		"http.createGoalRequest": {
			"type": "object",
			"required": [
				"title"
			],
			"properties": {
				"title": {
					"type": "string"
				},
				"targetAmount": {
					"type": "integer"
				},
				"totalWeeks": {
					"type": "integer"
				},
				"startingAmount": {
					"type": "integer"
				},
				"imageUrl": {
					"type": "string"
				},
				"language": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"genre": {
					"type": "string"
				},
				"reminderDay": {
					"type": "string"
				}
			}
		},
		"http.toggleWeekRequest": {
			"type": "object",
			"required": [
				"isCompleted"
			],
			"properties": {
				"isCompleted": {
					"type": "boolean"
				}
			}
		},
		"http.depositRequest": {
			"type": "object",
			"required": [
				"amount"
			],
			"properties": {
				"amount": {
					"type": "integer"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
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
	Title:            "Fiftytwo API",
	Description:      "Incremental savings challenge: goals, weekly schedules and progress.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
