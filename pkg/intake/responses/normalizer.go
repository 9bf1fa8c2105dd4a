package responses

import (
	"fmt"
	"time"

	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

// CANONICAL_DATE_LAYOUT is the single stored calendar-date representation:
// no time of day, no zone.
const CANONICAL_DATE_LAYOUT = "2006-01-02"

// date notations accepted at the boundary
var acceptedDateLayouts = []string{
	CANONICAL_DATE_LAYOUT,
	time.RFC3339,
	"2006-01-02T15:04:05.999Z",
	"2006-01-02 15:04:05",
}

// Normalize converts an answer value into its persisted representation.
// Exactly one field of the result is populated; all others are nil, so a
// write replaces any previous answer of a different kind for the same
// question. A nil answer yields an all-nil record (unanswered), which is
// distinct from an answered empty string.
func Normalize(value *types.AnswerValue) types.ResponseValues {
	persisted := types.ResponseValues{}
	if value == nil {
		return persisted
	}

	switch {
	case value.Text != nil:
		persisted.TextValue = value.Text
	case value.Number != nil:
		persisted.NumberValue = value.Number
	case value.Boolean != nil:
		persisted.BooleanValue = value.Boolean
	case value.Date != nil:
		persisted.DateValue = value.Date
	case value.FileList != nil:
		persisted.FileURLs = value.FileList
	case value.Structured != nil:
		// opaque pass-through, the internal shape is not interpreted
		persisted.JSONValue = value.Structured
	}
	return persisted
}

// Denormalize converts a persisted record back into the UI-facing answer
// value. An all-nil record yields nil (unanswered).
func Denormalize(persisted types.ResponseValues) *types.AnswerValue {
	switch {
	case persisted.TextValue != nil:
		return &types.AnswerValue{Text: persisted.TextValue}
	case persisted.NumberValue != nil:
		return &types.AnswerValue{Number: persisted.NumberValue}
	case persisted.BooleanValue != nil:
		return &types.AnswerValue{Boolean: persisted.BooleanValue}
	case persisted.DateValue != nil:
		return &types.AnswerValue{Date: persisted.DateValue}
	case persisted.FileURLs != nil:
		return &types.AnswerValue{FileList: persisted.FileURLs}
	case persisted.JSONValue != nil:
		return &types.AnswerValue{Structured: persisted.JSONValue}
	}
	return nil
}

// CanonicalDate converts an accepted date notation to the canonical
// calendar-date form, dropping any time-of-day or zone component.
func CanonicalDate(raw string) (string, error) {
	for _, layout := range acceptedDateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed.Format(CANONICAL_DATE_LAYOUT), nil
		}
	}
	return "", fmt.Errorf("not an accepted date notation: '%s'", raw)
}

// AnswerFromWire converts a raw JSON value received from the UI into a typed
// answer, guided by the question kind. Nil means the question was cleared.
// The conversion is forgiving: a value that does not fit the kind-specific
// expectation falls back to the shape implied by its JSON type, mirroring
// how answers are interpreted when a question's type changed after answers
// were stored.
func AnswerFromWire(kind string, raw interface{}) *types.AnswerValue {
	if raw == nil {
		return nil
	}

	switch v := raw.(type) {
	case string:
		if kind == types.QUESTION_KIND_DATE {
			if canonical, err := CanonicalDate(v); err == nil {
				return types.DateAnswer(canonical)
			}
		}
		return types.TextAnswer(v)
	case float64:
		return types.NumberAnswer(v)
	case bool:
		return types.BooleanAnswer(v)
	case []interface{}:
		if kind == types.QUESTION_KIND_FILE_UPLOAD {
			if refs, ok := toStringSlice(v); ok {
				return types.FileListAnswer(refs)
			}
		}
		return types.StructuredAnswer(v)
	default:
		return types.StructuredAnswer(raw)
	}
}

func toStringSlice(entries []interface{}) ([]string, bool) {
	refs := make([]string, len(entries))
	for i, entry := range entries {
		ref, ok := entry.(string)
		if !ok {
			return nil, false
		}
		refs[i] = ref
	}
	return refs, true
}
