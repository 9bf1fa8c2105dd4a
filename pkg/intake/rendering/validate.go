package rendering

import (
	"regexp"

	"github.com/willem4130/thecareranchintake/pkg/intake/types"
	"github.com/willem4130/thecareranchintake/pkg/utils"
)

const (
	VALIDATION_ISSUE_REQUIRED = "required"
	VALIDATION_ISSUE_FORMAT   = "format"
)

type ValidationIssue struct {
	QuestionID string `json:"questionId"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// ValidateAnswer runs the submission-time checks of a single question.
// Selection count limits of multi-selects are soft UI constraints and are
// not enforced here; required still mandates at least one selection.
func ValidateAnswer(question types.Question, value *types.AnswerValue) []ValidationIssue {
	issues := []ValidationIssue{}

	if !isAnswered(value) {
		if question.Required {
			issues = append(issues, ValidationIssue{
				QuestionID: question.ID,
				Code:       VALIDATION_ISSUE_REQUIRED,
				Message:    "this question requires an answer",
			})
		}
		return issues
	}

	kind := MapQuestionKind(question.Type)
	rules := ParseValidationRules(question.ValidationRules)

	switch kind {
	case types.QUESTION_KIND_EMAIL:
		if value.Text != nil && !utils.CheckEmailFormat(*value.Text) {
			issues = append(issues, formatIssue(question.ID, "not a valid email address"))
		}
	case types.QUESTION_KIND_PHONE:
		if value.Text != nil && !utils.CheckPhoneFormat(*value.Text) {
			issues = append(issues, formatIssue(question.ID, "not a valid phone number"))
		}
	default:
		if rules.Pattern != nil && value.Text != nil {
			rule, err := regexp.Compile(*rules.Pattern)
			// a broken pattern in the catalog never blocks an answer
			if err == nil && !rule.MatchString(*value.Text) {
				issues = append(issues, formatIssue(question.ID, "answer does not match the expected format"))
			}
		}
	}
	return issues
}

// ValidatePage collects the validation issues of all questions of a page.
// Only the submit step blocks on issues; auto-save never does.
func ValidatePage(page types.FormPage, answers types.DraftState) []ValidationIssue {
	issues := []ValidationIssue{}
	for _, question := range page.AllQuestions() {
		issues = append(issues, ValidateAnswer(question, answers[question.ID])...)
	}
	return issues
}

func formatIssue(questionID string, message string) ValidationIssue {
	return ValidationIssue{
		QuestionID: questionID,
		Code:       VALIDATION_ISSUE_FORMAT,
		Message:    message,
	}
}

// isAnswered treats an empty multi-select or matrix as unanswered, so
// required catches a selection that was made and then fully removed.
func isAnswered(value *types.AnswerValue) bool {
	if !value.IsAnswered() {
		return false
	}
	if value.Structured != nil {
		if entries := toInterfaceSlice(value.Structured); entries != nil && len(entries) == 0 {
			return false
		}
		if doc := toStringMap(value.Structured); doc != nil && len(doc) == 0 {
			return false
		}
	}
	if value.FileList != nil && len(value.FileList) == 0 {
		return false
	}
	return true
}
