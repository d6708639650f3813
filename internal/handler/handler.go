package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imgresize/internal/domain"
	"imgresize/internal/service"
)

type Handler struct {
	service       service.ResizeService
	maxUploadSize int64
	log           *zap.Logger
}

func New(service service.ResizeService, maxUploadSize int64, log *zap.Logger) *Handler {
	return &Handler{
		service:       service,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

// Resize handles POST /resize. The raw body is read whole before any
// multipart unwrapping; base64 transcoding happens downstream when the
// fronting proxy flags it.
func (h *Handler) Resize(c *gin.Context) {
	// Base64 inflates the wire size by 4/3; the decoded payload is checked
	// against the limit again in the pipeline.
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxUploadSize*2+1))
	if err != nil {
		h.log.Error("Failed to read request body",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		h.internalError(c, "failed to read request body")
		return
	}

	req := domain.IngestRequest{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Query:       c.Request.URL.Query(),
		ContentType: c.GetHeader("Content-Type"),
		Body:        body,
		IsBase64:    strings.EqualFold(c.GetHeader("Content-Transfer-Encoding"), "base64"),
	}

	asset, err := h.service.Resize(c.Request.Context(), req)
	if err != nil {
		if domain.IsClientError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Resize pipeline failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		h.internalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": asset.PublicURL})
}

// Hello is the liveness probe.
func (h *Handler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "image resize service is running"})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// NotFound answers every unroutable method/path combination.
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "No handler for path: " + c.Request.URL.Path})
}

func (h *Handler) internalError(c *gin.Context, details string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"details": details,
	})
}
