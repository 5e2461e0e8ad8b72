package services

import (
	"errors"
	"fmt"

	"bizconsole_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the console's single static admin and issues
// session tokens. There is no registration and no user store.
type AuthService interface {
	Login(email, password string) (string, error)
}

type authService struct {
	adminEmail   string
	passwordHash []byte
}

// NewAuthService creates an AuthService for the configured admin credential
// pair. The hash is a bcrypt hash of the admin password.
func NewAuthService(adminEmail string, passwordHash []byte) AuthService {
	return &authService{adminEmail: adminEmail, passwordHash: passwordHash}
}

func (s *authService) Login(email, password string) (string, error) {
	if email != s.adminEmail {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(s.adminEmail, "admin")
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return token, nil
}
