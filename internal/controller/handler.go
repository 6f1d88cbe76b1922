package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/registrar"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/users"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
	"github.com/saxenaaman628/online-voting-system/internal/validation"
)

type Options struct {
	// Development exposes internal error detail in 500 responses.
	Development   bool
	MaxImageBytes int64
	Now           func() time.Time
}

type Handler struct {
	store     store.Store
	validator *validation.Validator
	users     *users.Service
	registrar *registrar.Registrar
	opts      Options
}

func New(s store.Store, v *validation.Validator, u *users.Service, r *registrar.Registrar, opts Options) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = 5 << 20
	}
	return &Handler{store: s, validator: v, users: u, registrar: r, opts: opts}
}

const (
	msgEmailTaken         = "Email already registered, please use a different email address"
	msgInvalidCredentials = "Invalid email, password, or user type"
	msgDuplicateVote      = "You have already voted for this candidate in this election"
	msgElectionClosed     = "Voting for this election has closed"
)

var duplicateMessages = map[string]string{
	store.FieldEmail:  "Email already exists, please use a different email address",
	store.FieldUserID: "User ID already exists, please choose a different ID",
	store.FieldUid:    "UID already exists, please choose a different UID",
}

func duplicateMessage(field string) string {
	if msg, ok := duplicateMessages[field]; ok {
		return msg
	}
	if field == "" {
		return "Record already exists"
	}
	return field + " already exists, please choose a different value"
}

// respondError writes the envelope for err. Unclassified errors are logged
// and answered with 500.
func (h *Handler) respondError(c *gin.Context, op string, err error) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		utils.ErrorResponse(c, http.StatusBadRequest, "Validation Error", fieldErrs)
	case errors.Is(err, users.ErrEmailTaken):
		utils.ErrorResponse(c, http.StatusBadRequest, msgEmailTaken, nil)
	case errors.Is(err, registrar.ErrDuplicateVote):
		utils.ErrorResponse(c, http.StatusBadRequest, msgDuplicateVote, nil)
	case errors.Is(err, users.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, msgInvalidCredentials, nil)
	case errors.Is(err, registrar.ErrElectionClosed):
		utils.ErrorResponse(c, http.StatusForbidden, msgElectionClosed, nil)
	case errors.Is(err, store.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Record not found", nil)
	default:
		if dup, ok := store.IsDuplicate(err); ok {
			slog.Info("Duplicate key rejected", "op", op, "collection", dup.Collection, "field", dup.Field)
			utils.ErrorResponse(c, http.StatusBadRequest, duplicateMessage(dup.Field), nil)
			return
		}
		slog.Error("Request failed", "op", op, "error", err)
		utils.InternalError(c, err, h.opts.Development)
	}
}

func (h *Handler) badPayload(c *gin.Context) {
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request payload", nil)
}

// Health pings the store.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
