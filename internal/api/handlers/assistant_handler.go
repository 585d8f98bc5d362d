package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/queueaway/queueaway/internal/application/services"
)

// AssistantHandler handles chat assistant requests
type AssistantHandler struct {
	service *services.AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(service *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

type assistantRequest struct {
	Message string `json:"message"`
}

// Message handles POST /api/assistant/message
func (h *AssistantHandler) Message(w http.ResponseWriter, r *http.Request) {
	var payload assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	reply, err := h.service.Reply(r.Context(), payload.Message)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"reply": reply,
	})
}
