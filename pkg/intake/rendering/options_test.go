package rendering

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSlugifyOptionValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Acute", "acute"},
		{"Not sure yet", "not-sure-yet"},
		{"  spaced   out  ", "-spaced-out-"},
		{"already-slugged", "already-slugged"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"", ""},
	}

	for _, test := range tests {
		result := SlugifyOptionValue(test.input)
		if result != test.expected {
			t.Errorf("expected %q for input %q, but got %q", test.expected, test.input, result)
		}

		// applying the slug rule twice must not change the value again
		if twice := SlugifyOptionValue(result); twice != result {
			t.Errorf("slugify not idempotent for %q: %q != %q", test.input, twice, result)
		}
	}
}

func TestParseOptions(t *testing.T) {
	t.Run("nil and non-list inputs", func(t *testing.T) {
		for _, raw := range []interface{}{nil, "not a list", 42, map[string]interface{}{"a": 1}} {
			options := ParseOptions(raw)
			if len(options) != 0 {
				t.Errorf("expected no options for %v, got %v", raw, options)
			}
		}
	})

	t.Run("plain label strings", func(t *testing.T) {
		options := ParseOptions([]interface{}{"Acute", "Chronic", "Both", "N/A"})
		if len(options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(options))
		}
		if options[0].Value != "acute" || options[0].Label != "Acute" {
			t.Errorf("unexpected first option: %v", options[0])
		}
		if options[3].Value != "n/a" || options[3].Label != "N/A" {
			t.Errorf("unexpected last option: %v", options[3])
		}
	})

	t.Run("string slice from catalog", func(t *testing.T) {
		options := ParseOptions([]string{"Yes", "No"})
		if len(options) != 2 || options[1].Value != "no" {
			t.Errorf("unexpected options: %v", options)
		}
	})

	t.Run("value label objects", func(t *testing.T) {
		options := ParseOptions([]interface{}{
			map[string]interface{}{"value": "opt-a", "label": "Option A"},
			map[string]interface{}{"value": "opt-b", "label": "Option B"},
		})
		if len(options) != 2 {
			t.Fatalf("expected 2 options, got %d", len(options))
		}
		if options[0].Value != "opt-a" || options[0].Label != "Option A" {
			t.Errorf("unexpected option: %v", options[0])
		}
	})

	t.Run("ordered docs as decoded from the store", func(t *testing.T) {
		options := ParseOptions(primitive.A{
			bson.D{{Key: "value", Value: "opt-a"}, {Key: "label", Value: "Option A"}},
		})
		if len(options) != 1 || options[0].Value != "opt-a" || options[0].Label != "Option A" {
			t.Errorf("unexpected options: %v", options)
		}
	})

	t.Run("malformed entries degrade to positional options", func(t *testing.T) {
		options := ParseOptions([]interface{}{
			"Fine",
			map[string]interface{}{"label": "no value key"},
			42,
		})
		if len(options) != 3 {
			t.Fatalf("expected 3 options, got %d", len(options))
		}
		if options[1].Value != "option-1" {
			t.Errorf("expected positional value for malformed entry, got %q", options[1].Value)
		}
		if options[2].Value != "option-2" || options[2].Label != "42" {
			t.Errorf("unexpected fallback option: %v", options[2])
		}
	})
}
