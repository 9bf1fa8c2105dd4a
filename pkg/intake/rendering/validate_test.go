package rendering

import (
	"testing"

	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

func TestValidateAnswerRequired(t *testing.T) {
	required := types.Question{ID: "q1", Type: types.QUESTION_TYPE_SHORT_TEXT, Required: true}
	optional := types.Question{ID: "q2", Type: types.QUESTION_TYPE_SHORT_TEXT}

	t.Run("missing required answer", func(t *testing.T) {
		issues := ValidateAnswer(required, nil)
		if len(issues) != 1 || issues[0].Code != VALIDATION_ISSUE_REQUIRED {
			t.Errorf("expected one required issue, got %v", issues)
		}
	})

	t.Run("missing optional answer", func(t *testing.T) {
		if issues := ValidateAnswer(optional, nil); len(issues) != 0 {
			t.Errorf("expected no issues, got %v", issues)
		}
	})

	t.Run("empty string still answers a required question", func(t *testing.T) {
		if issues := ValidateAnswer(required, types.TextAnswer("")); len(issues) != 0 {
			t.Errorf("expected no issues, got %v", issues)
		}
	})

	t.Run("cleared multi select counts as unanswered", func(t *testing.T) {
		multi := types.Question{ID: "q3", Type: types.QUESTION_TYPE_MULTIPLE_CHOICE, Required: true}
		issues := ValidateAnswer(multi, types.StructuredAnswer([]interface{}{}))
		if len(issues) != 1 || issues[0].Code != VALIDATION_ISSUE_REQUIRED {
			t.Errorf("expected one required issue, got %v", issues)
		}
	})

	t.Run("cleared file list counts as unanswered", func(t *testing.T) {
		upload := types.Question{ID: "q4", Type: types.QUESTION_TYPE_FILE_UPLOAD, Required: true}
		issues := ValidateAnswer(upload, types.FileListAnswer([]string{}))
		if len(issues) != 1 || issues[0].Code != VALIDATION_ISSUE_REQUIRED {
			t.Errorf("expected one required issue, got %v", issues)
		}
	})
}

func TestValidateAnswerFormats(t *testing.T) {
	email := types.Question{ID: "q1", Type: types.QUESTION_TYPE_EMAIL}
	phone := types.Question{ID: "q2", Type: types.QUESTION_TYPE_PHONE}

	tests := []struct {
		name        string
		question    types.Question
		value       *types.AnswerValue
		issueCount  int
		expectedMsg string
	}{
		{"valid email", email, types.TextAnswer("person@example.com"), 0, ""},
		{"invalid email", email, types.TextAnswer("not-an-email"), 1, "not a valid email address"},
		{"valid phone", phone, types.TextAnswer("+31 6 1234 5678"), 0, ""},
		{"invalid phone", phone, types.TextAnswer("call me maybe"), 1, "not a valid phone number"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			issues := ValidateAnswer(test.question, test.value)
			if len(issues) != test.issueCount {
				t.Fatalf("expected %d issues, got %v", test.issueCount, issues)
			}
			if test.issueCount > 0 {
				if issues[0].Code != VALIDATION_ISSUE_FORMAT {
					t.Errorf("expected format issue, got %s", issues[0].Code)
				}
				if issues[0].Message != test.expectedMsg {
					t.Errorf("unexpected message: %s", issues[0].Message)
				}
			}
		})
	}
}

func TestValidateAnswerPattern(t *testing.T) {
	t.Run("pattern mismatch", func(t *testing.T) {
		question := types.Question{
			ID:              "q1",
			Type:            types.QUESTION_TYPE_SHORT_TEXT,
			ValidationRules: map[string]interface{}{"pattern": `^\d{4}$`},
		}
		if issues := ValidateAnswer(question, types.TextAnswer("12345")); len(issues) != 1 {
			t.Errorf("expected one issue, got %v", issues)
		}
		if issues := ValidateAnswer(question, types.TextAnswer("1234")); len(issues) != 0 {
			t.Errorf("expected no issues, got %v", issues)
		}
	})

	t.Run("broken pattern never blocks", func(t *testing.T) {
		question := types.Question{
			ID:              "q1",
			Type:            types.QUESTION_TYPE_SHORT_TEXT,
			ValidationRules: map[string]interface{}{"pattern": "("},
		}
		if issues := ValidateAnswer(question, types.TextAnswer("anything")); len(issues) != 0 {
			t.Errorf("expected no issues, got %v", issues)
		}
	})
}

func TestValidatePage(t *testing.T) {
	page := types.FormPage{
		ID: "p1",
		Sections: []types.FormSection{
			{
				ID: "s1",
				Questions: []types.Question{
					{ID: "q1", Type: types.QUESTION_TYPE_SHORT_TEXT, Required: true},
					{ID: "q2", Type: types.QUESTION_TYPE_EMAIL, Required: true},
					{ID: "q3", Type: types.QUESTION_TYPE_LONG_TEXT},
				},
			},
		},
	}

	answers := types.DraftState{
		"q2": types.TextAnswer("broken@"),
	}

	issues := ValidatePage(page, answers)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
	if issues[0].QuestionID != "q1" || issues[0].Code != VALIDATION_ISSUE_REQUIRED {
		t.Errorf("unexpected first issue: %v", issues[0])
	}
	if issues[1].QuestionID != "q2" || issues[1].Code != VALIDATION_ISSUE_FORMAT {
		t.Errorf("unexpected second issue: %v", issues[1])
	}
}
