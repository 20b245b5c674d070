package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadsafe/middleware"
	"roadsafe/utils"
)

// MyNotificationsHandler returns the caller's inbox, split by read state.
func (h *HandlerBundle) MyNotificationsHandler(c *gin.Context) {
	inbox, err := h.Notifier.InboxFor(c.GetString(middleware.CtxEmail))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inbox)
}

// MarkNotificationReadHandler marks one notification as read.
func (h *HandlerBundle) MarkNotificationReadHandler(c *gin.Context) {
	if err := h.Notifier.MarkRead(c.Param("notificationId")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "notification not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}
