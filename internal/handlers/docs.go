package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the GreenH2 API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	criteriaSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"region": map[string]interface{}{
				"type":        "string",
				"description": "Target region",
				"enum": []string{
					"gujarat", "rajasthan", "maharashtra",
					"karnataka", "tamil_nadu", "andhra_pradesh", "india",
				},
			},
			"max_cost": map[string]interface{}{
				"type":        "number",
				"description": "Maximum acceptable LCOH in $/kg",
				"example":     5.0,
			},
			"min_production": map[string]interface{}{
				"type":        "number",
				"description": "Minimum annual production in kg H2/year",
				"example":     1000000,
			},
			"proximity_to_grid": map[string]interface{}{
				"type":        "boolean",
				"description": "Require grid connection within the configured threshold",
			},
		},
		"required": []string{"region", "max_cost"},
	}

	featureCollectionSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"type": map[string]string{"type": "string"},
			"features": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"type": map[string]string{"type": "string"},
						"geometry": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"type": map[string]string{"type": "string"},
								"coordinates": map[string]interface{}{
									"type":        "array",
									"description": "[longitude, latitude]",
									"items":       map[string]string{"type": "number"},
								},
							},
						},
						"properties": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"site_name":                   map[string]string{"type": "string"},
								"region":                      map[string]string{"type": "string"},
								"rank":                        map[string]string{"type": "integer"},
								"lcoh":                        map[string]string{"type": "number"},
								"production_cost":             map[string]string{"type": "number"},
								"transport_cost":              map[string]string{"type": "number"},
								"renewable_score":             map[string]string{"type": "number"},
								"infrastructure_proximity_km": map[string]string{"type": "number"},
								"nearest_infrastructure":      map[string]string{"type": "string"},
								"annual_production_tonnes":    map[string]string{"type": "number"},
							},
						},
					},
				},
			},
			"metadata": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"optimization_criteria": map[string]string{"type": "object"},
					"algorithm":             map[string]string{"type": "string"},
					"region_focus":          map[string]string{"type": "string"},
					"total_sites_found":     map[string]string{"type": "integer"},
					"skipped_records":       map[string]string{"type": "integer"},
					"data_sources": map[string]interface{}{
						"type":  "array",
						"items": map[string]string{"type": "string"},
					},
					"degraded_mode": map[string]string{"type": "boolean"},
				},
			},
		},
	}

	errorResponse := map[string]interface{}{
		"description": "Invalid optimization criteria",
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"error":   map[string]string{"type": "string"},
						"message": map[string]string{"type": "string"},
						"code":    map[string]string{"type": "integer"},
					},
				},
			},
		},
	}

	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "GreenH2 Site Optimization API",
			"description": "Green hydrogen production site optimization with LCOH scoring, infrastructure proximity analysis, and GeoJSON output",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "GreenH2 Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8000", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/optimize": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Run site optimization",
					"description": "Rank candidate hydrogen production sites for a region; result wrapped in a status envelope",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": criteriaSchema,
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful optimization",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"status":  map[string]string{"type": "string"},
											"message": map[string]string{"type": "string"},
											"data":    featureCollectionSchema,
										},
									},
								},
							},
						},
						"400": errorResponse,
					},
				},
			},
			"/api/optimize": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Run site optimization (raw GeoJSON)",
					"description": "Same optimization as /optimize but returns the bare GeoJSON feature collection",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": criteriaSchema,
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful optimization",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": featureCollectionSchema,
								},
							},
						},
						"400": errorResponse,
					},
				},
			},
			"/optimizer/status": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Optimizer status",
					"description": "Engine identity, capabilities, supported regions, and reference data connectivity",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Status report",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"status":             map[string]string{"type": "string"},
											"engine":             map[string]string{"type": "string"},
											"version":            map[string]string{"type": "string"},
											"database_connected": map[string]string{"type": "boolean"},
											"capabilities": map[string]interface{}{
												"type":  "array",
												"items": map[string]string{"type": "string"},
											},
											"supported_regions": map[string]interface{}{
												"type":  "array",
												"items": map[string]string{"type": "string"},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			"/regions": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List supported regions",
					"description": "Region identifiers, display names, and map centers for frontends",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Supported regions",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "array",
										"items": map[string]interface{}{
											"type": "object",
											"properties": map[string]interface{}{
												"region":       map[string]string{"type": "string"},
												"display_name": map[string]string{"type": "string"},
												"map_center": map[string]interface{}{
													"type": "object",
													"properties": map[string]interface{}{
														"latitude":  map[string]string{"type": "number"},
														"longitude": map[string]string{"type": "number"},
														"zoom":      map[string]string{"type": "integer"},
													},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health check",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Service is healthy",
						},
					},
				},
			},
			"/": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "API status",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Service identity and docs location",
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
