package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eltech/pos-terminal/internal/application/service"
	"github.com/eltech/pos-terminal/internal/presentation/http/dto/response"
)

// NotificationHandler drains the terminal's notification feed for the UI.
type NotificationHandler struct {
	feed *service.NotificationFeed
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(feed *service.NotificationFeed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List returns pending notifications and clears them from the feed.
func (h *NotificationHandler) List(c *gin.Context) {
	response.OK(c, "Notifications retrieved", h.feed.Drain())
}
