package intake

import (
	"errors"
	"log/slog"

	intakeDB "github.com/willem4130/thecareranchintake/pkg/db/intake"
	"github.com/willem4130/thecareranchintake/pkg/intake/rendering"
	"github.com/willem4130/thecareranchintake/pkg/intake/responses"
	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

var (
	intakeDBService *intakeDB.IntakeDBService
)

var (
	ErrNoActiveForm        = errors.New("no active form found")
	ErrPageNotFound        = errors.New("page not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrFormAlreadyComplete = errors.New("form already submitted")
)

func Init(intakeDBConn *intakeDB.IntakeDBService) {
	intakeDBService = intakeDBConn
}

func GetActiveForm(instanceID string) (types.Form, error) {
	form, err := intakeDBService.GetActiveForm(instanceID)
	if err != nil {
		return form, ErrNoActiveForm
	}
	return form, nil
}

func GetPageByOrder(instanceID string, order int32) (types.Form, types.FormPage, error) {
	form, err := GetActiveForm(instanceID)
	if err != nil {
		return form, types.FormPage{}, err
	}
	page, ok := form.GetPageByOrder(order)
	if !ok {
		return form, types.FormPage{}, ErrPageNotFound
	}
	return form, page, nil
}

// RenderPage builds the typed rendering configuration of a page, combining
// catalog questions with the current draft answers.
func RenderPage(page types.FormPage, answers types.DraftState) []rendering.RenderConfig {
	questions := page.AllQuestions()
	configs := make([]rendering.RenderConfig, 0, len(questions))
	for _, question := range questions {
		configs = append(configs, rendering.BuildRenderConfig(question, answers[question.ID]))
	}
	return configs
}

// GetPageResponses loads the persisted answers of one page as a draft state,
// used to seed an editing session when the page is opened.
func GetPageResponses(instanceID string, formKey string, userID string, pageID string) (types.DraftState, error) {
	form, err := intakeDBService.GetFormByKey(instanceID, formKey)
	if err != nil {
		return nil, ErrNoActiveForm
	}
	page, ok := form.GetPageByID(pageID)
	if !ok {
		return nil, ErrPageNotFound
	}

	submission, err := intakeDBService.GetOrCreateSubmission(instanceID, formKey, userID)
	if err != nil {
		return nil, err
	}

	questions := page.AllQuestions()
	questionIDs := make([]string, len(questions))
	for i, question := range questions {
		questionIDs[i] = question.ID
	}

	stored, err := intakeDBService.GetResponsesForQuestions(instanceID, submission.ID, questionIDs)
	if err != nil {
		return nil, err
	}

	draft := types.DraftState{}
	for _, record := range stored {
		if value := responses.Denormalize(record.Values); value != nil {
			draft[record.QuestionID] = value
		}
	}
	return draft, nil
}

// SaveDraft persists one page worth of draft answers. Answers for question
// IDs not on the page are skipped; each stored record ends up with exactly
// one populated value field. The submission's save point is updated last.
func SaveDraft(instanceID string, formKey string, userID string, pageID string, draft types.DraftState) error {
	form, err := intakeDBService.GetFormByKey(instanceID, formKey)
	if err != nil {
		return ErrNoActiveForm
	}
	page, ok := form.GetPageByID(pageID)
	if !ok {
		return ErrPageNotFound
	}

	submission, err := intakeDBService.GetOrCreateSubmission(instanceID, formKey, userID)
	if err != nil {
		return err
	}

	pageQuestions := map[string]types.Question{}
	for _, question := range page.AllQuestions() {
		pageQuestions[question.ID] = question
	}

	for questionID, value := range draft {
		if _, onPage := pageQuestions[questionID]; !onPage {
			slog.Warn("skipping answer for unknown question", slog.String("questionID", questionID), slog.String("pageID", pageID))
			continue
		}
		persisted := responses.Normalize(value)
		if err := intakeDBService.UpsertResponse(instanceID, submission.ID, questionID, persisted); err != nil {
			return err
		}
	}

	return intakeDBService.UpdateSubmissionSavePoint(instanceID, submission.ID, pageID)
}

// ValidateSubmission checks every required question of the form against the
// stored responses. Issues block submission; answers already stored are
// never touched.
func ValidateSubmission(instanceID string, formKey string, userID string) ([]rendering.ValidationIssue, error) {
	form, err := intakeDBService.GetFormByKey(instanceID, formKey)
	if err != nil {
		return nil, ErrNoActiveForm
	}
	submission, err := intakeDBService.GetSubmission(instanceID, formKey, userID)
	if err != nil {
		return nil, ErrSubmissionNotFound
	}

	stored, err := intakeDBService.GetAllResponses(instanceID, submission.ID)
	if err != nil {
		return nil, err
	}
	answers := types.DraftState{}
	for _, record := range stored {
		if value := responses.Denormalize(record.Values); value != nil {
			answers[record.QuestionID] = value
		}
	}

	issues := []rendering.ValidationIssue{}
	for _, page := range form.Pages {
		issues = append(issues, rendering.ValidatePage(page, answers)...)
	}
	return issues, nil
}

// SubmitForm finalizes the user's submission after validation passed.
func SubmitForm(instanceID string, formKey string, userID string) error {
	submission, err := intakeDBService.GetSubmission(instanceID, formKey, userID)
	if err != nil {
		return ErrSubmissionNotFound
	}
	if submission.Status == types.SUBMISSION_STATUS_SUBMITTED {
		return ErrFormAlreadyComplete
	}
	return intakeDBService.MarkSubmissionSubmitted(instanceID, submission.ID)
}

// GetProgress reports how much of the form the user answered so far.
func GetProgress(instanceID string, formKey string, userID string) (types.SubmissionProgress, error) {
	progress := types.SubmissionProgress{}

	form, err := intakeDBService.GetFormByKey(instanceID, formKey)
	if err != nil {
		return progress, ErrNoActiveForm
	}
	progress.Total = form.QuestionCount()

	submission, err := intakeDBService.GetSubmission(instanceID, formKey, userID)
	if err != nil {
		// nothing saved yet
		return progress, nil
	}

	answered, err := intakeDBService.CountAnsweredResponses(instanceID, submission.ID)
	if err != nil {
		return progress, err
	}
	progress.Answered = int(answered)
	if progress.Total > 0 {
		progress.Percentage = (progress.Answered*100 + progress.Total/2) / progress.Total
	}
	return progress, nil
}
