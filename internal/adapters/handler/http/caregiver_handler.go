package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

type CaregiverHandler struct {
	service ports.CaregiverService
	log     logrus.FieldLogger
}

func NewCaregiverHandler(service ports.CaregiverService, log logrus.FieldLogger) *CaregiverHandler {
	return &CaregiverHandler{
		service: service,
		log:     log,
	}
}

type createdTokenResponse struct {
	CreatedToken string `json:"created_token"`
}

// Generate godoc
// @Summary      Mints a caregiver invitation token
// @Description  The token is valid for 72 hours and can be redeemed once.
// @Tags         caregivers
// @Produce      json
// @Success      201  {object}  createdTokenResponse
// @Failure      401
// @Router       /api/caregivers/generate [post]
func (h *CaregiverHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	token, err := h.service.Mint(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdTokenResponse{CreatedToken: token.Token})
}

// Add godoc
// @Summary      Redeems an invitation token
// @Description  Links the authenticated user as caregiver of the token's owner.
// @Tags         caregivers
// @Param        token  path  string  true  "Invitation token"
// @Success      204
// @Failure      400
// @Failure      404
// @Router       /api/caregivers/add/{token} [post]
func (h *CaregiverHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.RedeemInvitation(r.Context(), userID, chi.URLParam(r, "token")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CaregiverHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	caregiverID, err := uuidParam(r, "caregiverID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.service.RemoveCaregiver(r.Context(), userID, caregiverID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CaregiverHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	caregivers, err := h.service.ListCaregivers(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, caregivers)
}

func (h *CaregiverHandler) Patients(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	patients, err := h.service.ListPatients(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}
