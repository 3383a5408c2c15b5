package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"pitchbook/models"
	"pitchbook/services/chat"
	"pitchbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler exposes the chat assistant endpoints.
type ChatHandler struct {
	svc chat.Service
}

func NewChatHandler(svc chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// HandleChat processes one chat turn: POST /api/chat.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	res := h.svc.HandleChat(c.Request.Context(), req.Text, req.SessionID)
	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"result":     res,
	})
}

// BookingExtractRequest is the payload for booking-parameter extraction.
type BookingExtractRequest struct {
	Text string `json:"text"`
}

// ExtractBooking resolves booking date/slots/pitch type: POST /api/chat/booking.
func (h *ChatHandler) ExtractBooking(c *gin.Context) {
	logger := utils.GetLogger()

	var req BookingExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid booking extract request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
		return
	}

	res := h.svc.ExtractBooking(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, res)
}

// ImageTagRequest carries a base64-encoded product photo.
type ImageTagRequest struct {
	Image  string `json:"image"`            // base64, no data URI prefix
	Format string `json:"format,omitempty"` // e.g. "jpeg", "png"
}

// TagProductImage returns descriptive tags for a product photo: POST /api/chat/image-tags.
func (h *ChatHandler) TagProductImage(c *gin.Context) {
	logger := utils.GetLogger()

	var req ImageTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid image tag request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be non-empty base64"})
		return
	}
	if req.Format == "" {
		req.Format = "jpeg"
	}

	tags, err := h.svc.TagProductImage(c.Request.Context(), data, req.Format)
	if err != nil {
		logger.Error("Image tagging failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tag image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
