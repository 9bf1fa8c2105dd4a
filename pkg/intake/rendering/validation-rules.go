package rendering

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationRules is the tolerantly parsed constraint bag of a question.
// Fields are only meaningful in combination with the question kind; a field
// irrelevant for a kind is simply never read.
type ValidationRules struct {
	Min           *float64
	Max           *float64
	MinValue      *float64
	MaxValue      *float64
	MinLabel      *string
	MaxLabel      *string
	MinSelections *int
	MaxSelections *int
	Pattern       *string
	MaxFiles      *int
}

// ParseValidationRules reads the loosely typed rules value stored in the
// catalog. Fields with an unexpected shape are treated as absent; parsing
// never fails.
func ParseValidationRules(raw interface{}) ValidationRules {
	rules := ValidationRules{}

	doc := toStringMap(raw)
	if doc == nil {
		return rules
	}

	rules.Min = floatField(doc, "min")
	rules.Max = floatField(doc, "max")
	rules.MinValue = floatField(doc, "minValue")
	rules.MaxValue = floatField(doc, "maxValue")
	rules.MinLabel = stringField(doc, "minLabel")
	rules.MaxLabel = stringField(doc, "maxLabel")
	rules.MinSelections = intField(doc, "minSelections")
	rules.MaxSelections = intField(doc, "maxSelections")
	rules.Pattern = stringField(doc, "pattern")
	rules.MaxFiles = intField(doc, "maxFiles")
	return rules
}

func floatField(doc map[string]interface{}, key string) *float64 {
	value, ok := doc[key]
	if !ok {
		return nil
	}
	parsed, ok := toFloat(value)
	if !ok {
		return nil
	}
	return &parsed
}

func intField(doc map[string]interface{}, key string) *int {
	value := floatField(doc, key)
	if value == nil {
		return nil
	}
	parsed := int(*value)
	return &parsed
}

func stringField(doc map[string]interface{}, key string) *string {
	value, ok := doc[key].(string)
	if !ok {
		return nil
	}
	return &value
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// toStringMap accepts the shapes the mongo driver or a JSON decoder may hand
// over for a loosely typed document.
func toStringMap(raw interface{}) map[string]interface{} {
	switch doc := raw.(type) {
	case map[string]interface{}:
		return doc
	case bson.M:
		return map[string]interface{}(doc)
	case bson.D:
		converted := make(map[string]interface{}, len(doc))
		for _, elem := range doc {
			converted[elem.Key] = elem.Value
		}
		return converted
	}
	return nil
}

func toInterfaceSlice(raw interface{}) []interface{} {
	switch entries := raw.(type) {
	case []interface{}:
		return entries
	case primitive.A:
		return []interface{}(entries)
	case []string:
		converted := make([]interface{}, len(entries))
		for i, entry := range entries {
			converted[i] = entry
		}
		return converted
	}
	return nil
}

func optionFromOrderedDoc(entry interface{}) (value string, label string, ok bool) {
	doc := toStringMap(entry)
	if doc == nil {
		return "", "", false
	}
	value, hasValue := doc["value"].(string)
	label, hasLabel := doc["label"].(string)
	if !hasValue || !hasLabel {
		return "", "", false
	}
	return value, label, true
}
