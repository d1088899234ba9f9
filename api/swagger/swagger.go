package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "MED-A API",
        "description": "Content gating API for the MED-A educational portal",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Hierarchy", "description": "Departments, courses and classes"},
        {"name": "Content", "description": "Redacted catalog and access verification"},
        {"name": "Subscription", "description": "Billing gateway proxy"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/departments": {
            "get": {
                "tags": ["Hierarchy"],
                "summary": "List departments",
                "responses": {"200": {"$ref": "#/definitions/ResponseEnvelope"}}
            },
            "post": {
                "tags": ["Hierarchy"],
                "summary": "Create department",
                "responses": {"201": {"$ref": "#/definitions/ResponseEnvelope"}, "400": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/departments/{id}": {
            "delete": {
                "tags": ["Hierarchy"],
                "summary": "Delete department",
                "responses": {"204": {"description": "Deleted"}, "404": {"$ref": "#/definitions/APIError"}, "412": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/courses": {
            "get": {
                "tags": ["Hierarchy"],
                "summary": "List courses",
                "responses": {"200": {"$ref": "#/definitions/ResponseEnvelope"}}
            },
            "post": {
                "tags": ["Hierarchy"],
                "summary": "Create course",
                "responses": {"201": {"$ref": "#/definitions/ResponseEnvelope"}, "400": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/courses/{id}": {
            "delete": {
                "tags": ["Hierarchy"],
                "summary": "Delete course",
                "responses": {"204": {"description": "Deleted"}, "404": {"$ref": "#/definitions/APIError"}, "412": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/classes": {
            "get": {
                "tags": ["Hierarchy"],
                "summary": "List classes",
                "responses": {"200": {"$ref": "#/definitions/ResponseEnvelope"}}
            },
            "post": {
                "tags": ["Hierarchy"],
                "summary": "Create class",
                "responses": {"201": {"$ref": "#/definitions/ResponseEnvelope"}, "400": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/classes/{id}": {
            "delete": {
                "tags": ["Hierarchy"],
                "summary": "Delete class",
                "responses": {"204": {"description": "Deleted"}, "404": {"$ref": "#/definitions/APIError"}, "412": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/content": {
            "get": {
                "tags": ["Content"],
                "summary": "List redacted content items",
                "responses": {"200": {"$ref": "#/definitions/ResponseEnvelope"}}
            },
            "post": {
                "tags": ["Content"],
                "summary": "Create content item",
                "responses": {"201": {"$ref": "#/definitions/ResponseEnvelope"}, "400": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/content/{id}": {
            "get": {
                "tags": ["Content"],
                "summary": "Get one redacted content item",
                "responses": {"200": {"$ref": "#/definitions/ResponseEnvelope"}, "404": {"$ref": "#/definitions/APIError"}}
            },
            "delete": {
                "tags": ["Content"],
                "summary": "Delete content item",
                "responses": {"204": {"description": "Deleted"}, "404": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/content/{id}/verify": {
            "post": {
                "tags": ["Content"],
                "summary": "Verify access and disclose the resource URL",
                "responses": {
                    "200": {"$ref": "#/definitions/ResponseEnvelope"},
                    "402": {"$ref": "#/definitions/ResponseEnvelope"},
                    "403": {"$ref": "#/definitions/APIError"},
                    "404": {"$ref": "#/definitions/APIError"},
                    "429": {"$ref": "#/definitions/APIError"},
                    "502": {"$ref": "#/definitions/APIError"}
                }
            }
        },
        "/api/subscription/check": {
            "post": {
                "tags": ["Subscription"],
                "summary": "Check subscription state",
                "responses": {"200": {"$ref": "#/definitions/ResponseEnvelope"}, "502": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/subscription/initiate": {
            "post": {
                "tags": ["Subscription"],
                "summary": "Start a checkout",
                "responses": {"200": {"$ref": "#/definitions/ResponseEnvelope"}, "502": {"$ref": "#/definitions/APIError"}}
            }
        },
        "/api/subscription/plans": {
            "get": {
                "tags": ["Subscription"],
                "summary": "List purchasable plans",
                "responses": {"200": {"$ref": "#/definitions/ResponseEnvelope"}, "502": {"$ref": "#/definitions/APIError"}}
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
