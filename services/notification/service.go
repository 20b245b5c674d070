// Package notification persists in-app messages. Every publisher treats
// notification failures as log-and-continue: a lost message never fails the
// action that produced it.
package notification

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	notificationRepo "roadsafe/database/repository/notification"
	userRepo "roadsafe/database/repository/user"
	"roadsafe/models"
	"roadsafe/utils"
)

const defaultListLimit = 100

// Service writes and reads notification rows.
type Service struct {
	Notifications notificationRepo.NotificationRepository
	Users         userRepo.UserRepository
}

func NewService(notifications notificationRepo.NotificationRepository, users userRepo.UserRepository) *Service {
	return &Service{Notifications: notifications, Users: users}
}

// Notify records one message for one recipient. Errors are logged, never
// returned: producers must not fail because a notification did.
func (s *Service) Notify(email, message, notifType string, metadata map[string]string) {
	n := models.Notification{
		ID:        uuid.NewString(),
		Email:     email,
		Message:   message,
		Type:      notifType,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Notifications.Insert(&n); err != nil {
		utils.GetLogger().Warn("failed to record notification",
			zap.String("email", email),
			zap.String("type", notifType),
			zap.Error(err))
	}
}

// NotifyAdmins fans the message out to every admin account. Admins are
// queried at call time; there is no subscriber registry to keep in sync.
func (s *Service) NotifyAdmins(message, notifType string, metadata map[string]string) {
	admins, err := s.Users.ListAdmins()
	if err != nil {
		utils.GetLogger().Warn("failed to list admins for notification", zap.Error(err))
		return
	}
	if len(admins) == 0 {
		return
	}

	now := time.Now().UTC()
	batch := make([]models.Notification, len(admins))
	for i, admin := range admins {
		batch[i] = models.Notification{
			ID:        uuid.NewString(),
			Email:     admin.Email,
			Message:   message,
			Type:      notifType,
			Metadata:  metadata,
			CreatedAt: now,
		}
	}
	if err := s.Notifications.InsertMany(batch); err != nil {
		utils.GetLogger().Warn("failed to record admin notifications",
			zap.String("type", notifType),
			zap.Error(err))
	}
}

// Inbox groups a recipient's notifications by read state.
type Inbox struct {
	Unread []models.Notification `json:"unread"`
	Read   []models.Notification `json:"read"`
}

func (s *Service) InboxFor(email string) (*Inbox, error) {
	rows, err := s.Notifications.ListByEmail(email, defaultListLimit)
	if err != nil {
		return nil, err
	}
	inbox := &Inbox{
		Unread: []models.Notification{},
		Read:   []models.Notification{},
	}
	for _, n := range rows {
		if n.IsRead {
			inbox.Read = append(inbox.Read, n)
		} else {
			inbox.Unread = append(inbox.Unread, n)
		}
	}
	return inbox, nil
}

func (s *Service) MarkRead(id string) error {
	return s.Notifications.MarkRead(id)
}
