package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tenantmap/pkg/errors"
)

func TestSuccess(t *testing.T) {
	resp := Success(map[string]string{"message": "success"})
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestFail(t *testing.T) {
	resp := Fail("TEST_ERROR", "Test error message", "Additional details")
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TEST_ERROR", resp.Error.Code)
	assert.Equal(t, "Test error message", resp.Error.Message)
	assert.Equal(t, "Additional details", resp.Error.Details)
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, Success(map[string]string{"test": "data"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var decoded Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&decoded))
	assert.NotNil(t, decoded.Data)
	assert.Nil(t, decoded.Error)
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error",
			err:        errors.NewValidationError("tenant_id", nil, "required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "contract violation",
			err:        errors.NewStrategyError("MicrosoftCustomerAgreement", "ba-1"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "CONTRACT_VIOLATION",
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFromType(w, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)

			var decoded Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&decoded))
			require.NotNil(t, decoded.Error)
			assert.Equal(t, tt.wantCode, decoded.Error.Code)
		})
	}
}
