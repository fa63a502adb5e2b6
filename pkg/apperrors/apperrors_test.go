package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	withDetails := ErrContactFieldsRequired.WithDetails(map[string]string{"name": "required"})

	assert.Nil(t, ErrContactFieldsRequired.Details)
	assert.NotNil(t, withDetails.Details)
	assert.True(t, errors.Is(withDetails, ErrContactFieldsRequired))
	assert.False(t, errors.Is(withDetails, ErrInvalidJSON))
}

func TestWrap_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("list research: %w", DatabaseError(cause))

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, CodeDatabaseError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.ErrorIs(t, err, cause)

	_, ok = AsAppError(cause)
	assert.False(t, ok)
}

func TestErrContactFieldTooLong(t *testing.T) {
	err := ErrContactFieldTooLong("subject")
	assert.Equal(t, "subject is too long", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)
}

func TestHandleError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
	}{
		{"not found", NewNotFoundError("File not found"), http.StatusNotFound, CodeNotFound},
		{"method", NewMethodNotAllowedError(http.MethodPut), http.StatusMethodNotAllowed, CodeMethodNotAllowed},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
		{"unavailable", UnavailableError(errors.New("ping")), http.StatusServiceUnavailable, CodeUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x/", nil)

			HandleError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.True(t, c.IsAborted())

			var body struct {
				Error struct {
					Code    ErrorCode `json:"code"`
					Domain  string    `json:"domain"`
					Message string    `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestHandleError_HidesServerDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, InternalError(errors.New("secret")).WithDetails("stack"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "stack")
	assert.NotContains(t, w.Body.String(), "secret")
}
