package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueaway/queueaway/internal/api/handlers"
)

func TestAssistantHandler_Message(t *testing.T) {
	_, assistant := newQueueStack(t)
	handler := handlers.NewAssistantHandler(assistant)

	req := httptest.NewRequest("POST", "/api/assistant/message", strings.NewReader(`{"message":"hello"}`))
	w := httptest.NewRecorder()

	handler.Message(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response["reply"])
}

func TestAssistantHandler_Message_Invalid(t *testing.T) {
	_, assistant := newQueueStack(t)
	handler := handlers.NewAssistantHandler(assistant)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"message":`},
		{name: "blank message", body: `{"message":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/assistant/message", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.Message(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
