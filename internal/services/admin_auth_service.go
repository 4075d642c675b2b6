package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAdminDisabled           = errors.New("admin login disabled")
	ErrAdminCredentialsInvalid = errors.New("admin credentials invalid")
)

// AdminAuthService checks the single host password. Without a configured
// hash the admin inbox stays closed.
type AdminAuthService struct {
	passwordHash []byte
}

func NewAdminAuthService(passwordHash string) *AdminAuthService {
	return &AdminAuthService{passwordHash: []byte(strings.TrimSpace(passwordHash))}
}

func (service *AdminAuthService) Enabled() bool {
	return len(service.passwordHash) > 0
}

func (service *AdminAuthService) Authenticate(password string) error {
	if !service.Enabled() {
		return ErrAdminDisabled
	}
	if password == "" || bcrypt.CompareHashAndPassword(service.passwordHash, []byte(password)) != nil {
		return ErrAdminCredentialsInvalid
	}
	return nil
}

// HashAdminPassword enforces the password policy before hashing.
func HashAdminPassword(password string) (string, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
