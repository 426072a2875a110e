package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

const (
	minPasswordLength = 8
	maxNameLength     = 50
)

// registration is a sign-up form that passed validation.
type registration struct {
	email    string
	name     string
	password string
}

func (r RegisterRequest) validate() (registration, error) {
	email, err := normalizeEmail(r.Email)
	if err != nil {
		return registration{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	name, err := normalizeName(r.Name)
	if err != nil {
		return registration{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	if len(r.Password) < minPasswordLength {
		msg := fmt.Sprintf("password must be at least %d characters", minPasswordLength)
		return registration{}, apperrors.Wrap(apperrors.CodeInvalidInput, msg, nil)
	}
	if r.Password != r.ConfirmPassword {
		return registration{}, apperrors.Wrap(apperrors.CodeInvalidInput, "passwords do not match", nil)
	}
	return registration{email: email, name: name, password: r.Password}, nil
}

// validate returns the normalized email of a well-formed login attempt.
func (r LoginRequest) validate() (string, error) {
	email, err := normalizeEmail(r.Email)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	if strings.TrimSpace(r.Password) == "" {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "password cannot be empty", nil)
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(codeAuth, "failed to hash password", err)
	}
	return string(hashed), nil
}

func passwordMatches(user User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", errors.New("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}

// normalizeName trims the display name shown in the app header.
func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	switch {
	case name == "":
		return "", errors.New("name cannot be empty")
	case len([]rune(name)) > maxNameLength:
		return "", fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return "", errors.New("name contains invalid characters")
	}
	return name, nil
}
