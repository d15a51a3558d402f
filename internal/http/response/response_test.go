package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/repeat-backend/internal/platform/apierr"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apierr.NotFound("card_not_found", "card %d", 7), http.StatusNotFound, "card_not_found", "not found: card 7"},
		{"invalid", fmt.Errorf("wrap: %w", apierr.Invalid("invalid_deck_name", "deck name is required")), http.StatusBadRequest, "invalid_deck_name", "invalid argument: deck name is required"},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "list_failed", "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondServiceError(c, "list_failed", tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.code || env.Error.Message != tc.message {
				t.Fatalf("envelope = %+v", env.Error)
			}
		})
	}
}
