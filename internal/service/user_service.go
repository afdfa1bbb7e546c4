package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"parking-be-svc/internal/models"
	"parking-be-svc/internal/repository"
	"parking-be-svc/pkg/logger"
)

var (
	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMasterProtected is returned when an operation would remove the
	// master identity
	ErrMasterProtected = errors.New("master user cannot be deleted")
	// ErrUserExists is returned when creating a username that is taken
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned for operations on unknown usernames
	ErrUserNotFound = errors.New("user not found")
)

// Claims is the JWT payload carried by authenticated requests
type Claims struct {
	Username string `json:"username"`
	Master   bool   `json:"master"`
	jwt.RegisteredClaims
}

// AuthResult is the outcome of a successful login
type AuthResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	IsMaster  bool      `json:"is_master"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserService defines authentication and user management operations
type UserService interface {
	Authenticate(username, password string) (*AuthResult, error)
	ListUsers() ([]models.UserInfo, error)
	CreateUser(username, password string) error
	ChangePassword(username, password string) error
	DeleteUser(username string) error
}

// userService implements UserService
type userService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	expiry    time.Duration
	logger    *logger.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, jwtSecret string, expiryHours int, logger *logger.Logger) UserService {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		expiry:    time.Duration(expiryHours) * time.Hour,
		logger:    logger,
	}
}

// Authenticate checks the credentials against the user store and issues a
// signed token. Passwords are compared as stored, in plaintext.
func (s *userService) Authenticate(username, password string) (*AuthResult, error) {
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	stored, ok := users[username]
	if !ok || stored != password {
		return nil, ErrInvalidCredentials
	}

	isMaster := username == models.MasterUsername
	expiresAt := time.Now().Add(s.expiry)

	claims := Claims{
		Username: username,
		Master:   isMaster,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"username": username,
		"master":   isMaster,
	}).Info("User authenticated successfully")

	return &AuthResult{
		Token:     token,
		Username:  username,
		IsMaster:  isMaster,
		ExpiresAt: expiresAt,
	}, nil
}

// ListUsers returns every username with its master marker, sorted for a
// stable management view. Passwords are never exposed.
func (s *userService) ListUsers() ([]models.UserInfo, error) {
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	infos := make([]models.UserInfo, 0, len(users))
	for username := range users {
		infos = append(infos, models.UserInfo{
			Username: username,
			IsMaster: username == models.MasterUsername,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Username < infos[j].Username })
	return infos, nil
}

// CreateUser adds a new user, rejecting duplicates
func (s *userService) CreateUser(username, password string) error {
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if _, ok := users[username]; ok {
		return ErrUserExists
	}

	if err := s.userRepo.Upsert(username, password); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.WithField("username", username).Info("User created")
	return nil
}

// ChangePassword overwrites the password of an existing user
func (s *userService) ChangePassword(username, password string) error {
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if _, ok := users[username]; !ok {
		return ErrUserNotFound
	}

	if err := s.userRepo.Upsert(username, password); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	s.logger.WithField("username", username).Info("Password changed")
	return nil
}

// DeleteUser removes a user. The master identity is rejected here, not only
// at the route guard, so the rule holds regardless of caller identity.
func (s *userService) DeleteUser(username string) error {
	if username == models.MasterUsername {
		return ErrMasterProtected
	}

	users, err := s.userRepo.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if _, ok := users[username]; !ok {
		return ErrUserNotFound
	}

	if err := s.userRepo.Remove(username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.WithField("username", username).Info("User deleted")
	return nil
}

// ParseToken verifies a signed token and returns its claims
func ParseToken(tokenString, jwtSecret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
