package http

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

type MedicationHandler struct {
	service ports.MedicationService
	log     logrus.FieldLogger
}

func NewMedicationHandler(service ports.MedicationService, log logrus.FieldLogger) *MedicationHandler {
	return &MedicationHandler{
		service: service,
		log:     log,
	}
}

type medicationRequest struct {
	MedicationName string `json:"medication_name" validate:"required,max=200"`
	Dose           string `json:"dose" validate:"max=100"`
	Timing         string `json:"timing" validate:"max=100"`
}

func (req medicationRequest) input() ports.MedicationInput {
	return ports.MedicationInput{
		MedicationName: req.MedicationName,
		Dose:           req.Dose,
		Timing:         req.Timing,
	}
}

func (h *MedicationHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req medicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	m, err := h.service.Add(r.Context(), userID, req.input())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	meds, err := h.service.FindAll(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, meds)
}

func (h *MedicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	id, err := uuidParam(r, "medicationID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	m, err := h.service.Find(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	id, err := uuidParam(r, "medicationID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req medicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.service.Update(r.Context(), userID, id, req.input()); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	id, err := uuidParam(r, "medicationID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.service.Remove(r.Context(), userID, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
