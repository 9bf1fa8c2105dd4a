package apihandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mw "github.com/willem4130/thecareranchintake/pkg/apihelpers/middlewares"
	"github.com/willem4130/thecareranchintake/pkg/intake"
	"github.com/willem4130/thecareranchintake/pkg/intake/rendering"
	"github.com/willem4130/thecareranchintake/pkg/intake/responses"
	"github.com/willem4130/thecareranchintake/pkg/intake/session"
	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

func (h *HttpEndpoints) AddIntakeFormAPI(rg *gin.RouterGroup) {
	formGroup := rg.Group("/intake")
	formGroup.Use(mw.GetAndValidateIntakeUserJWT(h.tokenSignKey))
	{
		formGroup.GET("/form", h.getActiveForm)
		formGroup.GET("/form/pages/:order", h.getFormPage)
		formGroup.PUT("/form/pages/:order/responses", mw.RequirePayload(), h.saveDraftResponses)
		formGroup.POST("/form/pages/:order/flush", h.flushPage)
		formGroup.GET("/progress", h.getProgress)
		formGroup.POST("/validate", h.validateResponses)
		formGroup.POST("/submit", h.submitForm)
		formGroup.POST("/files", h.uploadFile)
		formGroup.GET("/files/:filename", h.getOwnFile)
	}
}

func parsePageOrder(c *gin.Context) (int32, bool) {
	order, err := strconv.ParseInt(c.Param("order"), 10, 32)
	if err != nil || order < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page order"})
		return 0, false
	}
	return int32(order), true
}

func (h *HttpEndpoints) getActiveForm(c *gin.Context) {
	token := validatedClaims(c)

	form, err := intake.GetActiveForm(token.InstanceID)
	if err != nil {
		slog.Error("failed to load active form", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "no active form"})
		return
	}

	pages := make([]gin.H, len(form.Pages))
	for i, page := range form.Pages {
		pages[i] = gin.H{
			"id":            page.ID,
			"title":         page.Title,
			"description":   page.Description,
			"order":         page.Order,
			"questionCount": len(page.AllQuestions()),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"key":         form.Key,
		"title":       form.Title,
		"description": form.Description,
		"pages":       pages,
	})
}

// getFormPage renders one page of the active form with the user's current
// draft merged in, opening (or reusing) the auto-save session of the page.
func (h *HttpEndpoints) getFormPage(c *gin.Context) {
	token := validatedClaims(c)

	order, ok := parsePageOrder(c)
	if !ok {
		return
	}

	form, page, err := intake.GetPageByOrder(token.InstanceID, order)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}

	sess, err := h.openPageSession(c.Request.Context(), token.InstanceID, form.Key, token.Subject, page.ID)
	if err != nil {
		slog.Error("failed to open page session", slog.String("userID", token.Subject), slog.String("pageID", page.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{
			"key":        form.Key,
			"title":      form.Title,
			"totalPages": len(form.Pages),
		},
		"page": gin.H{
			"id":          page.ID,
			"title":       page.Title,
			"description": page.Description,
			"order":       page.Order,
		},
		"questions":  intake.RenderPage(page, sess.Answers()),
		"saveStatus": sess.SaveStatus(),
	})
}

type SaveDraftReq struct {
	Responses map[string]interface{} `json:"responses"`
}

// saveDraftResponses feeds one auto-save burst from the client into the
// page's session. Writes are debounced server side; the response reports the
// save status at the time of the request, not the outcome of the eventual
// write.
func (h *HttpEndpoints) saveDraftResponses(c *gin.Context) {
	token := validatedClaims(c)

	order, ok := parsePageOrder(c)
	if !ok {
		return
	}

	var req SaveDraftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, page, err := intake.GetPageByOrder(token.InstanceID, order)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}

	sess, err := h.openPageSession(c.Request.Context(), token.InstanceID, form.Key, token.Subject, page.ID)
	if err != nil {
		slog.Error("failed to open page session", slog.String("userID", token.Subject), slog.String("pageID", page.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save responses"})
		return
	}

	kindByQuestionID := map[string]string{}
	for _, question := range page.AllQuestions() {
		kindByQuestionID[question.ID] = rendering.MapQuestionKind(question.Type)
	}

	edits := types.DraftState{}
	for questionID, raw := range req.Responses {
		kind, known := kindByQuestionID[questionID]
		if !known {
			slog.Warn("dropping response for unknown question", slog.String("questionID", questionID), slog.String("pageID", page.ID))
			continue
		}
		edits[questionID] = responses.AnswerFromWire(kind, raw)
	}
	sess.Apply(edits)

	c.JSON(http.StatusOK, gin.H{"saveStatus": sess.SaveStatus()})
}

// flushPage writes the pending draft of a page immediately, used when the
// client navigates away before the debounce timer fires.
func (h *HttpEndpoints) flushPage(c *gin.Context) {
	token := validatedClaims(c)

	order, ok := parsePageOrder(c)
	if !ok {
		return
	}

	_, page, err := intake.GetPageByOrder(token.InstanceID, order)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}

	sess, found := h.sessionManager.Get(token.Subject, page.ID)
	if !found {
		c.JSON(http.StatusOK, gin.H{"saveStatus": "idle"})
		return
	}

	if err := sess.Flush(c.Request.Context()); err != nil {
		slog.Error("failed to flush page draft", slog.String("userID", token.Subject), slog.String("pageID", page.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saveStatus": sess.SaveStatus()})
}

func (h *HttpEndpoints) getProgress(c *gin.Context) {
	token := validatedClaims(c)

	form, err := intake.GetActiveForm(token.InstanceID)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}

	progress, err := intake.GetProgress(token.InstanceID, form.Key, token.Subject)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *HttpEndpoints) validateResponses(c *gin.Context) {
	token := validatedClaims(c)

	form, err := intake.GetActiveForm(token.InstanceID)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}

	// Pending drafts have to reach the store before validation reads it.
	h.sessionManager.CloseUserSessions(c.Request.Context(), token.Subject)

	issues, err := intake.ValidateSubmission(token.InstanceID, form.Key, token.Subject)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":  len(issues) == 0,
		"issues": issues,
	})
}

func (h *HttpEndpoints) submitForm(c *gin.Context) {
	token := validatedClaims(c)

	form, err := intake.GetActiveForm(token.InstanceID)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}

	h.sessionManager.CloseUserSessions(c.Request.Context(), token.Subject)

	issues, err := intake.ValidateSubmission(token.InstanceID, form.Key, token.Subject)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}
	if len(issues) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "form has validation issues",
			"issues": issues,
		})
		return
	}

	if err := intake.SubmitForm(token.InstanceID, form.Key, token.Subject); err != nil {
		h.handleIntakeError(c, err)
		return
	}

	slog.Info("form submitted", slog.String("userID", token.Subject), slog.String("formKey", form.Key), slog.String("instanceID", token.InstanceID))
	c.JSON(http.StatusOK, gin.H{"message": "form submitted"})
}

// openPageSession returns the user's editing session of the page, creating
// it seeded from the stored responses when the page is opened first.
func (h *HttpEndpoints) openPageSession(ctx context.Context, instanceID string, formKey string, userID string, pageID string) (*session.Session, error) {
	if sess, found := h.sessionManager.Get(userID, pageID); found {
		return sess, nil
	}

	initial, err := intake.GetPageResponses(instanceID, formKey, userID, pageID)
	if err != nil {
		return nil, err
	}

	sess := h.sessionManager.Open(ctx, userID, pageID, initial, func(saveCtx context.Context, snapshot types.DraftState) error {
		return intake.SaveDraft(instanceID, formKey, userID, pageID, snapshot)
	})
	return sess, nil
}

func (h *HttpEndpoints) handleIntakeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, intake.ErrNoActiveForm):
		c.JSON(http.StatusNotFound, gin.H{"error": "no active form"})
	case errors.Is(err, intake.ErrPageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	case errors.Is(err, intake.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
	case errors.Is(err, intake.ErrFormAlreadyComplete):
		c.JSON(http.StatusConflict, gin.H{"error": "form already submitted"})
	default:
		slog.Error("unexpected error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
