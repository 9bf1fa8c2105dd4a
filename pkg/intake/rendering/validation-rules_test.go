package rendering

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParseValidationRules(t *testing.T) {
	t.Run("nil and malformed input", func(t *testing.T) {
		for _, raw := range []interface{}{nil, "not a map", 7, []interface{}{"min", 1}} {
			rules := ParseValidationRules(raw)
			if rules.Min != nil || rules.Max != nil || rules.Pattern != nil {
				t.Errorf("expected empty rules for %v, got %+v", raw, rules)
			}
		}
	})

	t.Run("typical seeded rules", func(t *testing.T) {
		rules := ParseValidationRules(map[string]interface{}{
			"min": 0,
			"max": 10,
		})
		if rules.Min == nil || *rules.Min != 0 {
			t.Errorf("unexpected min: %v", rules.Min)
		}
		if rules.Max == nil || *rules.Max != 10 {
			t.Errorf("unexpected max: %v", rules.Max)
		}
	})

	t.Run("ordered doc as decoded from the store", func(t *testing.T) {
		rules := ParseValidationRules(bson.D{
			{Key: "min", Value: int32(1)},
			{Key: "max", Value: int64(5)},
			{Key: "minLabel", Value: "low"},
		})
		if rules.Min == nil || *rules.Min != 1 {
			t.Errorf("unexpected min: %v", rules.Min)
		}
		if rules.Max == nil || *rules.Max != 5 {
			t.Errorf("unexpected max: %v", rules.Max)
		}
		if rules.MinLabel == nil || *rules.MinLabel != "low" {
			t.Errorf("unexpected minLabel: %v", rules.MinLabel)
		}
	})

	t.Run("fields with wrong shapes are absent", func(t *testing.T) {
		rules := ParseValidationRules(map[string]interface{}{
			"min":           "three",
			"max":           []int{10},
			"pattern":       12,
			"maxFiles":      "many",
			"minSelections": true,
		})
		if rules.Min != nil || rules.Max != nil || rules.Pattern != nil || rules.MaxFiles != nil || rules.MinSelections != nil {
			t.Errorf("expected absent fields, got %+v", rules)
		}
	})

	t.Run("selection and file limits", func(t *testing.T) {
		rules := ParseValidationRules(map[string]interface{}{
			"minSelections": 1,
			"maxSelections": 3,
			"maxFiles":      float64(2),
		})
		if rules.MinSelections == nil || *rules.MinSelections != 1 {
			t.Errorf("unexpected minSelections: %v", rules.MinSelections)
		}
		if rules.MaxSelections == nil || *rules.MaxSelections != 3 {
			t.Errorf("unexpected maxSelections: %v", rules.MaxSelections)
		}
		if rules.MaxFiles == nil || *rules.MaxFiles != 2 {
			t.Errorf("unexpected maxFiles: %v", rules.MaxFiles)
		}
	})
}
