package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/repeat-backend/internal/http/response"
)

func parseIDParam(c *gin.Context, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, code, err)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads a non-negative integer query parameter; absent means 0.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, errInvalidQuery(name, raw))
		return 0, false
	}
	return n, true
}

type queryError struct{ name, raw string }

func (e queryError) Error() string { return "invalid " + e.name + " " + strconv.Quote(e.raw) }

func errInvalidQuery(name, raw string) error { return queryError{name: name, raw: raw} }
