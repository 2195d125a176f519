package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/models"
)

func (h *Handler) ListConversations(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	conversations, err := h.store.ListConversations(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to list conversations", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

type createConversationRequest struct {
	FirstMessage string `json:"firstMessage"`
}

// CreateConversation opens a new chat thread, asking the model for a short
// title based on the opening message.
func (h *Handler) CreateConversation(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FirstMessage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	title, err := h.llm.GenerateTitle(c.Request.Context(), req.FirstMessage)
	if err != nil || title == "" {
		logger.Get().Warn("failed to generate conversation title", zap.Error(err), zap.String("user_id", claims.Subject))
		title = "New Chat"
	}

	conversation, err := h.store.CreateConversation(c.Request.Context(), claims.Subject, title)
	if err != nil {
		logger.Get().Error("failed to create conversation", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"conversation": conversation})
}

func (h *Handler) GetConversation(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	conversation, err := h.store.GetConversation(c.Request.Context(), claims.Subject, c.Param("id"))
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to get conversation", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conversation})
}

type updateConversationRequest struct {
	Messages []models.ChatMessage `json:"messages"`
	Title    string               `json:"title"`
}

func (h *Handler) UpdateConversation(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	err := h.store.UpdateConversation(c.Request.Context(), claims.Subject, c.Param("id"), req.Messages, req.Title)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to update conversation", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteConversation(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	err := h.store.DeleteConversation(c.Request.Context(), claims.Subject, c.Param("id"))
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to delete conversation", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
