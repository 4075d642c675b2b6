package services

import (
	"errors"
	"testing"
)

func TestAdminAuthService(t *testing.T) {
	hash, err := HashAdminPassword("Ferienwohnung2026")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	service := NewAdminAuthService(" " + hash + "\n")
	if !service.Enabled() {
		t.Fatal("expected admin login to be enabled")
	}
	if err := service.Authenticate("Ferienwohnung2026"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
	if err := service.Authenticate("ferienwohnung2026"); !errors.Is(err, ErrAdminCredentialsInvalid) {
		t.Fatalf("expected ErrAdminCredentialsInvalid, got %v", err)
	}
	if err := service.Authenticate(""); !errors.Is(err, ErrAdminCredentialsInvalid) {
		t.Fatalf("expected ErrAdminCredentialsInvalid for empty password, got %v", err)
	}
}

func TestAdminAuthServiceDisabledWithoutHash(t *testing.T) {
	service := NewAdminAuthService("")
	if err := service.Authenticate("anything"); !errors.Is(err, ErrAdminDisabled) {
		t.Fatalf("expected ErrAdminDisabled, got %v", err)
	}
}

func TestHashAdminPasswordRejectsWeakPassword(t *testing.T) {
	if _, err := HashAdminPassword("weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
