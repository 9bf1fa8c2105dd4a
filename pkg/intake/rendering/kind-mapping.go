package rendering

import (
	"log/slog"

	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

var storedTypeToKind = map[string]string{
	types.QUESTION_TYPE_SHORT_TEXT:      types.QUESTION_KIND_SHORT_TEXT,
	types.QUESTION_TYPE_LONG_TEXT:       types.QUESTION_KIND_LONG_TEXT,
	types.QUESTION_TYPE_EMAIL:           types.QUESTION_KIND_EMAIL,
	types.QUESTION_TYPE_PHONE:           types.QUESTION_KIND_PHONE,
	types.QUESTION_TYPE_DATE:            types.QUESTION_KIND_DATE,
	types.QUESTION_TYPE_RATING:          types.QUESTION_KIND_RATING,
	types.QUESTION_TYPE_SCALE:           types.QUESTION_KIND_SCALE,
	types.QUESTION_TYPE_YES_NO:          types.QUESTION_KIND_YES_NO,
	types.QUESTION_TYPE_SINGLE_CHOICE:   types.QUESTION_KIND_SINGLE_CHOICE,
	types.QUESTION_TYPE_MULTIPLE_CHOICE: types.QUESTION_KIND_MULTIPLE_CHOICE,
	types.QUESTION_TYPE_DROPDOWN:        types.QUESTION_KIND_DROPDOWN,
	types.QUESTION_TYPE_FILE_UPLOAD:     types.QUESTION_KIND_FILE_UPLOAD,
	types.QUESTION_TYPE_MATRIX:          types.QUESTION_KIND_MATRIX,
	types.QUESTION_TYPE_RANGE:           types.QUESTION_KIND_RANGE,

	// kinds without a dedicated input widget degrade to free text
	types.QUESTION_TYPE_NUMBER: types.QUESTION_KIND_SHORT_TEXT,
	types.QUESTION_TYPE_TIME:   types.QUESTION_KIND_SHORT_TEXT,
}

// MapQuestionKind translates the stored question type into the rendering kind.
// Unknown types fall back to free text so a single bad catalog record never
// blocks a whole page.
func MapQuestionKind(storedType string) string {
	kind, ok := storedTypeToKind[storedType]
	if !ok {
		slog.Warn("unknown question type, falling back to short-text", slog.String("type", storedType))
		return types.QUESTION_KIND_SHORT_TEXT
	}
	return kind
}
