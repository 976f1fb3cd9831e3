package http

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
	log     logrus.FieldLogger
}

func NewUserHandler(service ports.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetMe godoc
// @Summary      Returns the authenticated user
// @Tags         users
// @Produce      json
// @Success      200
// @Failure      401
// @Router       /api/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
