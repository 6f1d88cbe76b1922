package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saxenaaman628/online-voting-system/internal/registrar"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/users"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
	"github.com/saxenaaman628/online-voting-system/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		dev     bool
		status  int
		message string
		detail  string
	}{
		{"field errors", validation.FieldErrors{"email": "Email is required"}, false, http.StatusBadRequest, "Validation Error", ""},
		{"email taken", users.ErrEmailTaken, false, http.StatusBadRequest, "Email already registered, please use a different email address", ""},
		{"bad login", users.ErrInvalidCredentials, false, http.StatusUnauthorized, "Invalid email, password, or user type", ""},
		{"duplicate vote", registrar.ErrDuplicateVote, false, http.StatusBadRequest, "You have already voted for this candidate in this election", ""},
		{"closed", registrar.ErrElectionClosed, false, http.StatusForbidden, "Voting for this election has closed", ""},
		{"wrapped duplicate vote", fmt.Errorf("cast: %w", registrar.ErrDuplicateVote), false, http.StatusBadRequest, "You have already voted for this candidate in this election", ""},
		{"duplicate email", fmt.Errorf("insert: %w", &store.DuplicateKeyError{Collection: store.Candidates, Field: store.FieldEmail}),
			false, http.StatusBadRequest, "Email already exists, please use a different email address", ""},
		{"store failure hidden", errors.New("disk on fire"), false, http.StatusInternalServerError, "Internal server error", "Something went wrong"},
		{"store failure shown", errors.New("disk on fire"), true, http.StatusInternalServerError, "Internal server error", "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(nil, nil, nil, nil, Options{Development: tt.dev})
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h.respondError(c, "test", tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp utils.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.detail, resp.Error)
		})
	}
}

func TestSentinelErrorsAreLowercase(t *testing.T) {
	for _, err := range []error{users.ErrEmailTaken, users.ErrInvalidCredentials, registrar.ErrDuplicateVote, registrar.ErrElectionClosed} {
		msg := err.Error()
		assert.Equal(t, strings.ToLower(msg[:1]), msg[:1], msg)
	}
}

func TestDuplicateMessage(t *testing.T) {
	assert.Equal(t, "User ID already exists, please choose a different ID", duplicateMessage(store.FieldUserID))
	assert.Equal(t, "UID already exists, please choose a different UID", duplicateMessage(store.FieldUid))
	assert.Equal(t, "phone already exists, please choose a different value", duplicateMessage("phone"))
	assert.Equal(t, "Record already exists", duplicateMessage(""))
}
