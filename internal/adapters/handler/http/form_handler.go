package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

type FormHandler struct {
	forms      ports.FormService
	aggregator ports.AggregatorService
	log        logrus.FieldLogger
}

func NewFormHandler(forms ports.FormService, aggregator ports.AggregatorService, log logrus.FieldLogger) *FormHandler {
	return &FormHandler{
		forms:      forms,
		aggregator: aggregator,
		log:        log,
	}
}

type createFormRequest struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Description *string          `json:"description" validate:"omitnil,max=2000"`
	Questions   domain.Questions `json:"questions"`
}

type createdIDResponse struct {
	CreatedID uuid.UUID `json:"created_id"`
}

type submitFormRequest struct {
	Answers domain.Answers `json:"answers"`
}

// Create godoc
// @Summary      Creates a symptom form
// @Tags         forms
// @Accept       json
// @Produce      json
// @Success      201  {object}  createdIDResponse
// @Failure      400
// @Router       /api/forms [post]
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req createFormRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	form, err := h.forms.Create(r.Context(), ports.CreateFormInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdIDResponse{CreatedID: form.ID})
}

func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	forms, err := h.forms.FindFormsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

// ListAll godoc
// @Summary      Lists own forms and the forms of every patient in care
// @Tags         forms
// @Produce      json
// @Success      200
// @Router       /api/forms/all [get]
func (h *FormHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	forms, err := h.aggregator.ListAllForms(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

// Symptoms godoc
// @Summary      Symptom status of own and cared-for forms
// @Description  Each entry tells how long ago the form was last submitted and whether that was within 36 hours.
// @Tags         forms
// @Produce      json
// @Success      200  {array}  domain.Symptom
// @Router       /api/forms/symptoms [get]
func (h *FormHandler) Symptoms(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	symptoms, err := h.aggregator.SymptomStatus(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, symptoms)
}

// History godoc
// @Summary      Submission history of the user's own forms, newest first
// @Tags         forms
// @Produce      json
// @Success      200
// @Router       /api/forms/history [get]
func (h *FormHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	history, err := h.aggregator.SubmissionHistory(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	formID, err := uuidParam(r, "formID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	form, err := h.forms.FindForm(r.Context(), userID, formID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *FormHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	formID, err := uuidParam(r, "formID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	form, err := h.forms.FindFormForCaregiver(r.Context(), userID, formID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// Submit godoc
// @Summary      Submits answers to an owned form
// @Tags         forms
// @Accept       json
// @Param        formID  path  string  true  "Form id"
// @Success      201
// @Failure      400  "form not owned by the caller or answers invalid"
// @Router       /api/forms/{formID}/submit [post]
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	formID, err := uuidParam(r, "formID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req submitFormRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	err = h.forms.Submit(r.Context(), ports.SubmitFormInput{
		UserID:  userID,
		FormID:  formID,
		Answers: req.Answers,
	})
	if errors.Is(err, domain.ErrFormNotFound) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *FormHandler) EditQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	formID, err := uuidParam(r, "formID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	questionID, err := uuidParam(r, "questionID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var record domain.QuestionRecord
	if err := decodeJSON(r, &record); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	question, err := record.Question()
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	err = h.forms.EditQuestion(r.Context(), ports.EditQuestionInput{
		UserID:      userID,
		FormID:      formID,
		QuestionID:  questionID,
		NewQuestion: question,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
