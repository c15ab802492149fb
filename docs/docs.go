// Package docs holds the OpenAPI document served at /swagger. Keep it in step
// with the route annotations in internal/transport/http/gin.
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
        "/admin/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "Admin: list events",
                "parameters": [
                    {"type": "string", "description": "search", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Admin: create event",
                "parameters": [
                    {"description": "event", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpgin.EventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Event"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/admin/events/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Updates metadata. Reserved seats are kept; the grid size cannot change.",
                "summary": "Admin: update event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"description": "event", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpgin.EventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Event"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "summary": "Admin: delete event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/admin/events/{id}/tickets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "Admin: list tickets of an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Ticket"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "summary": "Sign in",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpgin.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpgin.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "summary": "Register an account",
                "parameters": [
                    {"description": "account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpgin.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/checkin": {
            "post": {
                "description": "Accepts a ticket ID or the scanned QR payload. A ticket is admitted once.",
                "summary": "Check in a ticket",
                "parameters": [
                    {"description": "ticket_id or payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpgin.CheckInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpgin.CheckInResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpgin.AlreadyUsedResponse"}}
                }
            }
        },
        "/events": {
            "get": {
                "summary": "List events",
                "parameters": [
                    {"type": "string", "description": "search in title, description and venue", "name": "q", "in": "query"},
                    {"type": "string", "description": "asc or desc by date", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "summary": "Get event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Event"}},
                    "304": {"description": "Not Modified"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/events/{id}/checkout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Reserves the seats and issues one ticket. Idempotent per Idempotency-Key when provided.",
                "summary": "Buy seats",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Idempotency key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "buyer and seats", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpgin.CheckoutRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/httpgin.TicketResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpgin.SeatConflictResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/events/{id}/quote": {
            "post": {
                "description": "Replays seat toggles in click order. Reserved and unknown seats are ignored.",
                "summary": "Quote a seat selection",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"description": "toggles", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpgin.QuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpgin.QuoteResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/events/{id}/seats": {
            "get": {
                "summary": "Get seat map",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.SeatMap"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/tickets/{id}": {
            "get": {
                "summary": "Get ticket",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpgin.TicketResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        },
        "/tickets/{id}/qr.png": {
            "get": {
                "produces": ["image/png"],
                "summary": "Ticket QR code",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpgin.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.SeatCell": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "label": {"type": "string"},
                "reserved": {"type": "boolean"}
            }
        },
        "catalog.SeatMap": {
            "type": "object",
            "properties": {
                "available": {"type": "integer"},
                "cols": {"type": "integer"},
                "eventId": {"type": "string"},
                "grid": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/catalog.SeatCell"}}},
                "rows": {"type": "integer"}
            }
        },
        "domain.Buyer": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "cols": {"type": "integer"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "price": {"type": "number"},
                "rows": {"type": "integer"},
                "seats": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "title": {"type": "string"},
                "venue": {"type": "string"}
            }
        },
        "domain.Ticket": {
            "type": "object",
            "properties": {
                "buyer": {"$ref": "#/definitions/domain.Buyer"},
                "checkedIn": {"type": "boolean"},
                "checkedInAt": {"type": "string"},
                "createdAt": {"type": "string"},
                "eventId": {"type": "string"},
                "id": {"type": "string"},
                "seats": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "httpgin.AlreadyUsedResponse": {
            "type": "object",
            "properties": {
                "checkedInAt": {"type": "string"},
                "error": {"type": "string"},
                "ticketId": {"type": "string"}
            }
        },
        "httpgin.BuyerRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "httpgin.CheckInRequest": {
            "type": "object",
            "properties": {
                "payload": {"type": "string"},
                "ticket_id": {"type": "string"}
            }
        },
        "httpgin.CheckInResponse": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/domain.Event"},
                "seatLabels": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "ticket": {"$ref": "#/definitions/domain.Ticket"}
            }
        },
        "httpgin.CheckoutRequest": {
            "type": "object",
            "properties": {
                "buyer": {"$ref": "#/definitions/httpgin.BuyerRequest"},
                "seats": {"type": "array", "items": {"type": "string"}}
            }
        },
        "httpgin.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "httpgin.EventRequest": {
            "type": "object",
            "properties": {
                "cols": {"type": "integer"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "rows": {"type": "integer"},
                "title": {"type": "string"},
                "venue": {"type": "string"}
            }
        },
        "httpgin.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "httpgin.LoginResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "httpgin.QuoteRequest": {
            "type": "object",
            "properties": {
                "toggles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "httpgin.QuoteResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "eventId": {"type": "string"},
                "labels": {"type": "array", "items": {"type": "string"}},
                "seats": {"type": "array", "items": {"type": "string"}},
                "summary": {"type": "string"},
                "total": {"type": "string"}
            }
        },
        "httpgin.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "httpgin.SeatConflictResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "seats": {"type": "array", "items": {"type": "string"}}
            }
        },
        "httpgin.TicketResponse": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/domain.Event"},
                "mailto": {"type": "string"},
                "receipt": {"$ref": "#/definitions/receipt.Receipt"},
                "ticket": {"$ref": "#/definitions/domain.Ticket"}
            }
        },
        "receipt.Receipt": {
            "type": "object",
            "properties": {
                "buyer": {"$ref": "#/definitions/domain.Buyer"},
                "checkedIn": {"type": "boolean"},
                "eventDate": {"type": "string"},
                "eventFound": {"type": "boolean"},
                "eventId": {"type": "string"},
                "eventTitle": {"type": "string"},
                "seatLabels": {"type": "array", "items": {"type": "string"}},
                "ticketId": {"type": "string"},
                "venue": {"type": "string"}
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
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EventBuzz API",
	Description:      "Seat reservation and ticket lifecycle for EventBuzz events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
