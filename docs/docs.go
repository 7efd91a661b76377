// Package docs registers the OpenAPI description served under /swagger.
//
// This file is maintained by hand, not generated by swag init: the handlers
// carry no swag annotations. Keep paths in step with Handler.Register;
// TestSwaggerDescribesEveryRoute in internal/http fails when they drift.
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
            "get": {"summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/services": {
            "get": {"summary": "List service definitions", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Service"}}}}},
            "post": {
                "summary": "Create a service definition",
                "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateServiceRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Service"}}, "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/services/{id}": {
            "get": {
                "summary": "Get a service definition",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Service"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/contracts": {
            "get": {"summary": "List all contracts, most recent start first", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Contract"}}}}},
            "post": {
                "summary": "Issue a contract and generate its delivery calendar",
                "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateContractRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Contract"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Service not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/contracts/{id}": {
            "get": {
                "summary": "List contracts of a patient",
                "parameters": [{"in": "path", "name": "id", "description": "patient id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Contract"}}}}
            }
        },
        "/contracts/{id}/cancel": {
            "post": {
                "summary": "Cancel a contract; repeated or unknown ids are a no-op",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/contracts/{id}/document": {
            "get": {
                "summary": "Download the contract sheet",
                "produces": ["application/pdf"],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "PDF"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/patients/{patientId}/active-contract": {
            "get": {
                "summary": "Whether the patient has an active contract",
                "parameters": [{"in": "path", "name": "patientId", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/calendars/{id}": {
            "get": {
                "summary": "Delivery calendar of a contract",
                "parameters": [{"in": "path", "name": "id", "description": "contract id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Slot"}}}, "404": {"description": "No calendar", "schema": {"$ref": "#/definitions/Error"}}}
            },
            "patch": {
                "summary": "Reschedule one delivery slot",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "description": "slot id", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RescheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Slot"}},
                    "400": {"description": "Validation failed or lead time not met", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Slot not found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Concurrent update", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/calendars/{id}/export": {
            "get": {
                "summary": "Download the delivery calendar workbook",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"in": "path", "name": "id", "description": "contract id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "XLSX"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}}
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}}
            }
        },
        "Service": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "duration_days": {"type": "integer"},
                "review_cadence": {"type": "string"},
                "cost": {"type": "number"},
                "includes_weekends": {"type": "boolean"}
            }
        },
        "CreateServiceRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "duration_days": {"type": "integer"},
                "review_cadence": {"type": "string"},
                "cost": {"type": "number"},
                "includes_weekends": {"type": "boolean"}
            }
        },
        "Contract": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "patient_id": {"type": "string", "format": "uuid"},
                "service_id": {"type": "string", "format": "uuid"},
                "service_name": {"type": "string"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["ACTIVE", "CANCELLED"]},
                "total_amount": {"type": "number"},
                "change_policy": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "CreateContractRequest": {
            "type": "object",
            "properties": {
                "patient_id": {"type": "string", "format": "uuid"},
                "service_id": {"type": "string", "format": "uuid"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"},
                "change_policy": {"type": "string"}
            }
        },
        "Slot": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "contract_id": {"type": "string", "format": "uuid"},
                "date": {"type": "string", "format": "date"},
                "weekday": {"type": "string"},
                "preferred_time": {"type": "string", "example": "08:00"},
                "delivery_address": {"type": "string"},
                "is_non_delivery_day": {"type": "boolean"},
                "version": {"type": "integer"}
            }
        },
        "RescheduleRequest": {
            "type": "object",
            "required": ["preferred_time"],
            "properties": {
                "preferred_time": {"type": "string", "example": "09:30"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Nutri Contracts API",
	Description:      "Contract issuance and delivery calendar service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
