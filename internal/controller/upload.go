package controller

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
)

// multipart framing allowance on top of the image itself
const formOverhead = 64 << 10

// UploadImage accepts a multipart "image" file and keeps it as a data URL.
func (h *Handler) UploadImage(c *gin.Context) {
	limit := h.opts.MaxImageBytes
	tooLarge := fmt.Sprintf("Image must be smaller than %dMB", limit>>20)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+formOverhead)

	fh, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, tooLarge, nil)
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "Please select an image to upload", nil)
		return
	}
	if fh.Size > limit {
		utils.ErrorResponse(c, http.StatusBadRequest, tooLarge, nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.respondError(c, "upload image", err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		h.respondError(c, "upload image", err)
		return
	}
	if int64(len(data)) > limit {
		utils.ErrorResponse(c, http.StatusBadRequest, tooLarge, nil)
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		utils.ErrorResponse(c, http.StatusBadRequest, "Only image files are allowed", nil)
		return
	}

	img := models.Image{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		DataURL:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		CreatedAt:   h.opts.Now(),
	}
	if err := h.store.SaveImage(c.Request.Context(), &img); err != nil {
		h.respondError(c, "upload image", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Image uploaded successfully!",
		"imageUrl": img.DataURL,
	})
}

func (h *Handler) LatestImage(c *gin.Context) {
	img, err := h.store.LatestImage(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		utils.ErrorResponse(c, http.StatusNotFound, "No image found", nil)
		return
	}
	if err != nil {
		h.respondError(c, "latest image", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imageUrl": img.DataURL})
}
