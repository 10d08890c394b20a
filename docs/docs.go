// Package docs registers the OpenAPI description of the tracker view API.
package docs

import "github.com/swaggo/swag"

// @title       Order Tracker View API
// @version     1.0
// @description Read-only view of the order being tracked: status badge, map marker and traveled route.
// @BasePath    /

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
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/v1/view": {
            "get": {
                "tags": ["view"],
                "summary": "Current rendered view",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/view/route": {
            "get": {
                "tags": ["view"],
                "summary": "Traveled route as a GeoJSON LineString feature",
                "produces": ["application/geo+json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/view/mirror": {
            "get": {
                "tags": ["view"],
                "summary": "View fields mirrored to Redis",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Mirror disabled"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Order Tracker View API",
	Description:      "Read-only view of the order being tracked: status badge, map marker and traveled route.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
