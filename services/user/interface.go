package user

import (
	annotatorRepo "roadsafe/database/repository/annotator"
	userRepo "roadsafe/database/repository/user"
	"roadsafe/models"
)

// UserService handles account registration and sign-in.
type UserService interface {
	Register(in RegisterInput) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetByID(id string) (*models.User, error)
}

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	Annotators annotatorRepo.AnnotatorRepository
}

func NewDefaultUserService(repo userRepo.UserRepository, annotators annotatorRepo.AnnotatorRepository) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Annotators: annotators}
}
