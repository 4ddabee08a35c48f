// Package docs holds the OpenAPI description of the JSON API, served by the
// Swagger UI under /swagger/. Keep it in line with the handler annotations;
// `swag init -g cmd/main.go -o internal/docs` regenerates it.
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
        "/currencies": {
            "get": {
                "description": "Pull current rates from the feed and return the refresh outcome.\nWhen the feed fails the previous rates are returned with \"stale\": true.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Currencies"
                ],
                "summary": "Refresh and list exchange rates",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated codes, e.g. USD,EUR",
                        "name": "codes",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/rate.Outcome"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/currencies/supported": {
            "get": {
                "description": "Retrieve the codes of the tracked currencies, accepted by the codes filter",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Currencies"
                ],
                "summary": "List supported currencies",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.GetSupportedCodesResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.GetSupportedCodesResponse": {
            "type": "object",
            "properties": {
                "codes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "CHF",
                        "CNY",
                        "EUR",
                        "GBP",
                        "JPY",
                        "USD"
                    ]
                }
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "rate.Entry": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "delta": {
                    "type": "number"
                },
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "nominal": {
                    "type": "integer"
                },
                "num_code": {
                    "type": "integer"
                },
                "rate": {
                    "type": "number"
                },
                "rate_per_unit": {
                    "type": "number"
                },
                "stale": {
                    "type": "boolean"
                }
            }
        },
        "rate.Outcome": {
            "type": "object",
            "properties": {
                "attempt_id": {
                    "type": "string"
                },
                "attempted_at": {
                    "type": "string"
                },
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/rate.Entry"
                    }
                },
                "failure": {
                    "type": "string"
                },
                "last_success_at": {
                    "type": "string"
                },
                "stale": {
                    "type": "boolean"
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
	Title:            "Currency Tracker API",
	Description:      "Exchange rates of the tracked currencies, refreshed from the CBR daily feed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
