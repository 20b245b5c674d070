package userRepo

import "roadsafe/models"

// UserRepository defines persistence for platform accounts.
type UserRepository interface {
	Create(u *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// ListAdmins returns every admin account. Notification fan-out queries
	// this at call time instead of keeping a subscriber registry.
	ListAdmins() ([]models.User, error)
}
