package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"roadsafe/models"
	"roadsafe/utils"
)

// AuthResponse is returned on successful registration or sign-in.
type AuthResponse struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AnnotatorID string `json:"annotatorId,omitempty"`
}

// RegisterInput is a new account request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	WorkArea string `json:"workArea"`
}

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	numberRe = regexp.MustCompile(`[0-9]`)
)

// verifyPasswordComplexity checks minimum length plus mixed-case and a digit.
func verifyPasswordComplexity(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !upperRe.MatchString(pw) {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !lowerRe.MatchString(pw) {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !numberRe.MatchString(pw) {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}

func normalizeRole(role string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case "", models.RoleTraveller:
		return models.RoleTraveller, nil
	case models.RoleAnnotator:
		return models.RoleAnnotator, nil
	case models.RoleAdmin:
		return models.RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}
}

// Register creates a new account. An ANNOTATOR registration also creates the
// annotator reliability record that labeling and review operate on.
func (s *DefaultUserService) Register(in RegisterInput) (*AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := verifyPasswordComplexity(in.Password); err != nil {
		return nil, err
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(in.Email)
	if err != nil {
		utils.GetLogger().Error("failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", in.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	resp := &AuthResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}

	if role == models.RoleAnnotator {
		ann := &models.Annotator{
			ID:        uuid.NewString(),
			UserID:    u.ID,
			Email:     u.Email,
			WorkArea:  in.WorkArea,
			CreatedAt: now,
		}
		if err := s.Annotators.Create(ann); err != nil {
			return nil, fmt.Errorf("failed to create annotator record: %w", err)
		}
		resp.AnnotatorID = ann.ID
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, utils.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	resp.Token = token

	utils.GetLogger().Info("account registered",
		zap.String("userId", u.ID),
		zap.String("role", u.Role))
	return resp, nil
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, utils.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	resp := &AuthResponse{ID: u.ID, Token: token, Name: u.Name, Email: u.Email, Role: u.Role}
	if u.Role == models.RoleAnnotator {
		if ann, err := s.Annotators.GetByEmail(u.Email); err == nil && ann != nil {
			resp.AnnotatorID = ann.ID
		}
	}
	return resp, nil
}

func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return u, nil
}
