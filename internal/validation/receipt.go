// Package validation checks raw decision receipt payloads before they enter
// the aggregation pipeline. Malformed payloads are reported, not thrown:
// callers degrade to neutral defaults per field.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/talent-insights/internal/types"
)

// receiptSchema validates the opaque signals/outcome payloads of a decision
// receipt. Unknown keys are allowed but ignored downstream; known keys must
// have the right shape.
const receiptSchema = `{
	"type": "object",
	"properties": {
		"decision_type": {
			"type": "string",
			"enum": ["submit", "reject", "override", "confidence_adjustment"]
		},
		"signals": {
			"type": "object",
			"properties": {
				"confidence_band": {"type": "string"},
				"confidence_score": {"type": "integer", "minimum": 0, "maximum": 100},
				"match_score": {"type": "integer", "minimum": 0, "maximum": 100}
			}
		},
		"human_override": {
			"type": ["object", "null"],
			"properties": {
				"actor": {"type": "string"},
				"reason": {"type": "string"}
			}
		},
		"outcome": {
			"type": ["object", "null"],
			"properties": {
				"hired": {"type": "boolean"},
				"tenure_days": {"type": "integer", "minimum": 0},
				"performance_rating": {"type": "number", "minimum": 0, "maximum": 5}
			}
		}
	},
	"required": ["decision_type"]
}`

var receiptSchemaLoader = gojsonschema.NewStringLoader(receiptSchema)

// CheckReceiptPayload validates a raw receipt payload against the schema and
// returns the list of issues found. An empty list means the payload is clean.
// Only I/O-level problems (unparseable JSON) return an error.
func CheckReceiptPayload(payload []byte) ([]string, error) {
	result, err := gojsonschema.Validate(receiptSchemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to validate receipt payload: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return issues, nil
}

// SanitizeSignals decodes a raw signals payload into the known keys,
// dropping anything with the wrong shape instead of failing the receipt.
func SanitizeSignals(raw []byte) types.DecisionSignals {
	if len(raw) == 0 {
		return types.DecisionSignals{}
	}

	var signals types.DecisionSignals
	if err := json.Unmarshal(raw, &signals); err != nil {
		// Field-level salvage: pull out whatever known keys decode cleanly.
		var loose map[string]json.RawMessage
		if json.Unmarshal(raw, &loose) != nil {
			return types.DecisionSignals{}
		}
		_ = json.Unmarshal(loose["confidence_band"], &signals.ConfidenceBand)
		_ = json.Unmarshal(loose["confidence_score"], &signals.ConfidenceScore)
		_ = json.Unmarshal(loose["match_score"], &signals.MatchScore)
	}
	return signals
}

// SanitizeOutcome decodes a raw outcome payload, returning nil when the
// payload is absent or unusable
func SanitizeOutcome(raw []byte) *types.DecisionOutcome {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var outcome types.DecisionOutcome
	if err := json.Unmarshal(raw, &outcome); err != nil {
		return nil
	}
	return &outcome
}
