package rendering

import (
	"fmt"
	"regexp"
	"strings"
)

type ChoiceOption struct {
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

var whitespaceRule = regexp.MustCompile(`\s+`)

// SlugifyOptionValue derives a stable option value from a plain label string:
// lowercased, whitespace replaced with "-". Applying it twice yields the same
// result.
func SlugifyOptionValue(label string) string {
	return whitespaceRule.ReplaceAllString(strings.ToLower(label), "-")
}

// ParseOptions normalizes the loosely typed options list of a choice-like
// question. Entries may be plain label strings or {value, label} objects;
// anything else degrades to a positional value with a stringified label.
// Never fails.
func ParseOptions(raw interface{}) []ChoiceOption {
	if raw == nil {
		return []ChoiceOption{}
	}

	entries := toInterfaceSlice(raw)
	if entries == nil {
		return []ChoiceOption{}
	}

	options := make([]ChoiceOption, 0, len(entries))
	for idx, entry := range entries {
		switch opt := entry.(type) {
		case string:
			options = append(options, ChoiceOption{
				Value: SlugifyOptionValue(opt),
				Label: opt,
			})
		case map[string]interface{}:
			value, hasValue := opt["value"].(string)
			label, hasLabel := opt["label"].(string)
			if hasValue && hasLabel {
				options = append(options, ChoiceOption{Value: value, Label: label})
				continue
			}
			options = append(options, fallbackOption(idx, entry))
		default:
			if value, label, ok := optionFromOrderedDoc(entry); ok {
				options = append(options, ChoiceOption{Value: value, Label: label})
				continue
			}
			options = append(options, fallbackOption(idx, entry))
		}
	}
	return options
}

func fallbackOption(idx int, entry interface{}) ChoiceOption {
	return ChoiceOption{
		Value: fmt.Sprintf("option-%d", idx),
		Label: fmt.Sprintf("%v", entry),
	}
}
