// Package docs holds the OpenAPI description served at /swagger when
// SWAGGER_ENABLED is set. Regenerate with `swag init -g cmd/pmserver/main.go`.
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
		"/organizations": {
			"post": {
				"operationId": "createOrganization",
				"summary": "Create an organization",
				"tags": [
					"Organizations"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateOrganizationRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Organization"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Slug already taken",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/organizations/{id}": {
			"get": {
				"operationId": "getOrganization",
				"summary": "Get an organization",
				"tags": [
					"Organizations"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Organization ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Organization"
						}
					},
					"404": {
						"description": "Organization not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/organizations/{id}/projects": {
			"post": {
				"operationId": "createProject",
				"summary": "Create a project in an organization",
				"tags": [
					"Projects"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Organization ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateProjectRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Project"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Organization not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/projects/{id}": {
			"get": {
				"operationId": "getProject",
				"summary": "Get a project",
				"tags": [
					"Projects"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Project"
						}
					},
					"404": {
						"description": "Project not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/projects/{id}/tasks": {
			"post": {
				"operationId": "createTask",
				"summary": "Create a task in a project",
				"tags": [
					"Tasks"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "X-User-ID",
						"in": "header"
					},
					{
						"type": "string",
						"description": "Idempotency key for safe retries",
						"name": "Idempotency-Key",
						"in": "header"
					},
					{
						"type": "integer",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateTaskRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.Task"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Project not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/tasks/{id}": {
			"get": {
				"operationId": "getTask",
				"summary": "Get a task",
				"tags": [
					"Tasks"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Task"
						}
					},
					"404": {
						"description": "Task not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"patch": {
				"operationId": "updateTask",
				"summary": "Update a task",
				"tags": [
					"Tasks"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.UpdateTaskRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.Task"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Task not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/tasks/{id}/comments": {
			"post": {
				"operationId": "addComment",
				"summary": "Comment on a task",
				"tags": [
					"Comments"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "X-User-ID",
						"in": "header"
					},
					{
						"type": "string",
						"description": "Idempotency key for safe retries",
						"name": "Idempotency-Key",
						"in": "header"
					},
					{
						"type": "integer",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.AddCommentRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/domain.TaskComment"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Task not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"get": {
				"operationId": "listComments",
				"summary": "List a task's comments",
				"tags": [
					"Comments"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.ListCommentsResponse"
						}
					},
					"404": {
						"description": "Task not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/integration-logs": {
			"get": {
				"operationId": "listIntegrationLogs",
				"summary": "List integration logs",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Return 304 if ETag matches",
						"name": "If-None-Match",
						"in": "header"
					},
					{
						"type": "string",
						"description": "Service",
						"name": "service",
						"in": "query",
						"enum": [
							"mock_mail",
							"mock_chat",
							"mail",
							"chat",
							"integration_orchestrator"
						]
					},
					{
						"type": "string",
						"description": "Event type",
						"name": "event_type",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Status",
						"name": "status",
						"in": "query",
						"enum": [
							"success",
							"failed",
							"pending",
							"retrying"
						]
					},
					{
						"type": "integer",
						"description": "Task ID",
						"name": "task_id",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Project ID",
						"name": "project_id",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Created at or after",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Created before",
						"name": "to",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Substring of recipient, subject or error message",
						"name": "q",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query",
						"default": 1,
						"minimum": 1
					},
					{
						"type": "integer",
						"description": "Items per page",
						"name": "page_size",
						"in": "query",
						"default": 20,
						"minimum": 1,
						"maximum": 100
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.ListLogsResponse"
						}
					},
					"304": {
						"description": "Not Modified"
					},
					"400": {
						"description": "Invalid filter",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"operationId": "purgeIntegrationLogs",
				"summary": "Delete old integration logs",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Age threshold in days",
						"name": "older_than_days",
						"in": "query",
						"minimum": 1
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.CountResponse"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/integration-logs/bulk-status": {
			"post": {
				"operationId": "bulkUpdateIntegrationLogStatus",
				"summary": "Set the status of several log rows",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.BulkStatusRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.CountResponse"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/integration-logs/{id}": {
			"get": {
				"operationId": "getIntegrationLog",
				"summary": "Get one integration log row",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Log ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.IntegrationLog"
						}
					},
					"404": {
						"description": "Log not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/integration-logs/{id}/mark-success": {
			"post": {
				"operationId": "markIntegrationLogSuccess",
				"summary": "Mark a log row successful",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Log ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					},
					{
						"description": "Optional response data",
						"name": "body",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/handlers.MarkSuccessRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.IntegrationLog"
						}
					},
					"404": {
						"description": "Log not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/integration-logs/{id}/mark-failed": {
			"post": {
				"operationId": "markIntegrationLogFailed",
				"summary": "Mark a log row failed",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Log ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.MarkFailedRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.IntegrationLog"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Log not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/integration-settings": {
			"get": {
				"operationId": "listIntegrationSettings",
				"summary": "List integration settings",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.ListSettingsResponse"
						}
					}
				}
			}
		},
		"/admin/integration-settings/{name}": {
			"get": {
				"operationId": "getIntegrationSettings",
				"summary": "Get the settings of one service",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Service name",
						"name": "name",
						"in": "path",
						"required": true,
						"enum": [
							"mock_mail",
							"mock_chat",
							"mail",
							"chat"
						]
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.IntegrationSettings"
						}
					},
					"400": {
						"description": "Unknown service",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "No settings row",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"patch": {
				"operationId": "updateIntegrationSettings",
				"summary": "Update the settings of one service",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Service name",
						"name": "name",
						"in": "path",
						"required": true,
						"enum": [
							"mock_mail",
							"mock_chat",
							"mail",
							"chat"
						]
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.UpdateSettingsRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.IntegrationSettings"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "No settings row",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/integrations/selftest": {
			"post": {
				"operationId": "integrationSelfTest",
				"summary": "Run the integration self-test",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Scope",
						"name": "service",
						"in": "query",
						"enum": [
							"all",
							"mail",
							"chat"
						],
						"default": "all"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/integrations.SelfTestReport"
						}
					},
					"400": {
						"description": "Unknown scope",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "At least one check failed",
						"schema": {
							"$ref": "#/definitions/integrations.SelfTestReport"
						}
					}
				}
			}
		},
		"/admin/integrations/overdue-reminders": {
			"post": {
				"operationId": "sendOverdueReminders",
				"summary": "Mail reminders for overdue tasks",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/integrations.ReminderReport"
						}
					},
					"409": {
						"description": "mock_mail disabled",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/organizations/{id}/digest": {
			"post": {
				"operationId": "postDailyDigest",
				"summary": "Post an organization's daily digest to chat",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Organization ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Organization not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "mock_chat disabled",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/projects/{id}/updates": {
			"post": {
				"operationId": "postProjectUpdate",
				"summary": "Announce a project update in chat",
				"tags": [
					"Admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true,
						"minimum": 1
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.ProjectUpdateRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Bad request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Project not found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "mock_chat disabled",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handlers.ErrorResponse": {
			"type": "object",
			"properties": {
				"request_id": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"handlers.Pagination": {
			"type": "object",
			"properties": {
				"page": {
					"type": "integer"
				},
				"page_size": {
					"type": "integer"
				},
				"total": {
					"type": "integer"
				},
				"total_pages": {
					"type": "integer"
				},
				"has_next": {
					"type": "boolean"
				}
			}
		},
		"handlers.CreateOrganizationRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"contact_email": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"contact_email"
			]
		},
		"handlers.CreateProjectRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"ACTIVE",
						"COMPLETED",
						"ON_HOLD"
					]
				},
				"due_date": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"handlers.CreateTaskRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"TODO",
						"IN_PROGRESS",
						"DONE"
					]
				},
				"assignee_email": {
					"type": "string"
				},
				"due_date": {
					"type": "string"
				}
			},
			"required": [
				"title"
			]
		},
		"handlers.UpdateTaskRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"TODO",
						"IN_PROGRESS",
						"DONE"
					]
				},
				"assignee_email": {
					"type": "string"
				},
				"due_date": {
					"type": "string"
				}
			}
		},
		"handlers.AddCommentRequest": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				},
				"author_email": {
					"type": "string"
				}
			},
			"required": [
				"content",
				"author_email"
			]
		},
		"handlers.ListCommentsResponse": {
			"type": "object",
			"properties": {
				"comments": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.TaskComment"
					}
				}
			}
		},
		"handlers.ListLogsResponse": {
			"type": "object",
			"properties": {
				"logs": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.IntegrationLog"
					}
				},
				"pagination": {
					"$ref": "#/definitions/handlers.Pagination"
				}
			}
		},
		"handlers.MarkSuccessRequest": {
			"type": "object",
			"properties": {
				"response_data": {
					"type": "object"
				}
			}
		},
		"handlers.MarkFailedRequest": {
			"type": "object",
			"properties": {
				"error_message": {
					"type": "string"
				}
			}
		},
		"handlers.BulkStatusRequest": {
			"type": "object",
			"properties": {
				"ids": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				},
				"status": {
					"type": "string",
					"enum": [
						"success",
						"failed",
						"pending",
						"retrying"
					]
				}
			}
		},
		"handlers.CountResponse": {
			"type": "object",
			"properties": {
				"count": {
					"type": "integer"
				}
			}
		},
		"handlers.ListSettingsResponse": {
			"type": "object",
			"properties": {
				"settings": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.IntegrationSettings"
					}
				}
			}
		},
		"handlers.UpdateSettingsRequest": {
			"type": "object",
			"properties": {
				"is_enabled": {
					"type": "boolean"
				},
				"is_mock_mode": {
					"type": "boolean"
				},
				"configuration": {
					"type": "object"
				}
			}
		},
		"handlers.ProjectUpdateRequest": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			},
			"required": [
				"message"
			]
		},
		"domain.Organization": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"contact_email": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.Project": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"organization_id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"due_date": {
					"type": "string",
					"format": "date-time"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.Task": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"project_id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"assignee_email": {
					"type": "string"
				},
				"due_date": {
					"type": "string",
					"format": "date-time"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.TaskComment": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"task_id": {
					"type": "integer"
				},
				"content": {
					"type": "string"
				},
				"author_email": {
					"type": "string"
				},
				"timestamp": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.IntegrationLog": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"service": {
					"type": "string"
				},
				"event_type": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"task_id": {
					"type": "integer"
				},
				"project_id": {
					"type": "integer"
				},
				"organization_id": {
					"type": "integer"
				},
				"recipient": {
					"type": "string"
				},
				"subject": {
					"type": "string"
				},
				"request_data": {
					"type": "object"
				},
				"response_data": {
					"type": "object"
				},
				"error_message": {
					"type": "string"
				},
				"response_time_ms": {
					"type": "integer"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"domain.IntegrationSettings": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"service_name": {
					"type": "string"
				},
				"is_enabled": {
					"type": "boolean"
				},
				"is_mock_mode": {
					"type": "boolean"
				},
				"configuration": {
					"type": "object"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"integrations.Check": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"ok",
						"skipped",
						"failed"
					]
				},
				"detail": {
					"type": "string"
				}
			}
		},
		"integrations.SelfTestReport": {
			"type": "object",
			"properties": {
				"scope": {
					"type": "string"
				},
				"checks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/integrations.Check"
					}
				},
				"settings": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.IntegrationSettings"
					}
				}
			}
		},
		"integrations.ReminderReport": {
			"type": "object",
			"properties": {
				"overdue": {
					"type": "integer"
				},
				"sent": {
					"type": "integer"
				},
				"failed": {
					"type": "integer"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Project Management API",
	Description:      "Organizations, projects, tasks and comments, with mail and chat notifications recorded in an integration log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
