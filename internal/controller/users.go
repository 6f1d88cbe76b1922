package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/middleware"
	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
)

func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c)
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req); err != nil {
		h.respondError(c, "register", err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully!", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c)
		return
	}

	resp, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the caller's session.
func (h *Handler) Me(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", session)
}
