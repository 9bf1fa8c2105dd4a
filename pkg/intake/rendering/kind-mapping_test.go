package rendering

import (
	"testing"

	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

func TestMapQuestionKind(t *testing.T) {
	tests := []struct {
		storedType string
		expected   string
	}{
		{types.QUESTION_TYPE_SHORT_TEXT, types.QUESTION_KIND_SHORT_TEXT},
		{types.QUESTION_TYPE_LONG_TEXT, types.QUESTION_KIND_LONG_TEXT},
		{types.QUESTION_TYPE_EMAIL, types.QUESTION_KIND_EMAIL},
		{types.QUESTION_TYPE_PHONE, types.QUESTION_KIND_PHONE},
		{types.QUESTION_TYPE_DATE, types.QUESTION_KIND_DATE},
		{types.QUESTION_TYPE_RATING, types.QUESTION_KIND_RATING},
		{types.QUESTION_TYPE_SCALE, types.QUESTION_KIND_SCALE},
		{types.QUESTION_TYPE_YES_NO, types.QUESTION_KIND_YES_NO},
		{types.QUESTION_TYPE_SINGLE_CHOICE, types.QUESTION_KIND_SINGLE_CHOICE},
		{types.QUESTION_TYPE_MULTIPLE_CHOICE, types.QUESTION_KIND_MULTIPLE_CHOICE},
		{types.QUESTION_TYPE_DROPDOWN, types.QUESTION_KIND_DROPDOWN},
		{types.QUESTION_TYPE_FILE_UPLOAD, types.QUESTION_KIND_FILE_UPLOAD},
		{types.QUESTION_TYPE_MATRIX, types.QUESTION_KIND_MATRIX},
		{types.QUESTION_TYPE_RANGE, types.QUESTION_KIND_RANGE},
		// no dedicated widgets, degrade to free text
		{types.QUESTION_TYPE_NUMBER, types.QUESTION_KIND_SHORT_TEXT},
		{types.QUESTION_TYPE_TIME, types.QUESTION_KIND_SHORT_TEXT},
		// unknown types never fail
		{"SOMETHING_NEW", types.QUESTION_KIND_SHORT_TEXT},
		{"", types.QUESTION_KIND_SHORT_TEXT},
		{"short_text", types.QUESTION_KIND_SHORT_TEXT},
	}

	for _, test := range tests {
		result := MapQuestionKind(test.storedType)
		if result != test.expected {
			t.Errorf("expected %s for stored type %q, but got %s", test.expected, test.storedType, result)
		}
	}
}
