package notificationRepo

import "roadsafe/models"

// NotificationRepository defines persistence for user notifications.
type NotificationRepository interface {
	Insert(n *models.Notification) error
	InsertMany(ns []models.Notification) error
	ListByEmail(email string, limit int64) ([]models.Notification, error)
	MarkRead(id string) error
}
