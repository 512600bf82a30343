package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("source", "field is not editable"), http.StatusBadRequest},
		{"not found wrapped", fmt.Errorf("get run: %w", NotFound("run", "strava_1")), http.StatusNotFound},
		{"computation", Computation("run %s has no heart rate", "x"), http.StatusUnprocessableEntity},
		{"conflict", Conflict(errors.New("duplicate key"), "run %s version %d", "x", 3), http.StatusConflict},
		{"external", External("google calendar", "create event", errors.New("503")), http.StatusBadGateway},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation: source: field is not editable", Validation("source", "field is not editable").Error())
	assert.Equal(t, "validation: window must be >= 1", Validation("", "window must be >= 1").Error())
	assert.Equal(t, "run strava_1 not found", NotFound("run", "strava_1").Error())
	assert.Equal(t, "google calendar delete event: 410 gone", External("google calendar", "delete event", errors.New("410 gone")).Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := Conflict(cause, "run %s", "x")
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsConflict(fmt.Errorf("update: %w", err)))

	ext := External("google calendar", "create event", cause)
	assert.ErrorIs(t, ext, cause)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "run x not found", PublicMessage(NotFound("run", "x")))
	assert.Equal(t, "internal server error", PublicMessage(errors.New("pq: password authentication failed")))
}
