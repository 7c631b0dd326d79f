package insight

import "github.com/abhisek/aura/internal/llm"

// ReflectionSchema defines the JSON schema for chakra reflections.
var ReflectionSchema = &llm.Schema{
	Name:        "chakra-reflection",
	Description: "A short reflection on the energy centers most in need of attention",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short, gentle title (3-7 words)",
			},
			"reflection": map[string]any{
				"type":        "string",
				"description": "Warm reflection on what the scores suggest (3-5 sentences)",
			},
			"practices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    2,
				"maxItems":    4,
				"description": "Simple everyday practices (5-12 words each)",
			},
			"affirmation": map[string]any{
				"type":        "string",
				"description": "One first-person affirmation sentence",
			},
		},
		"required":             []any{"title", "reflection", "practices", "affirmation"},
		"additionalProperties": false,
	},
}
