package auth

import "testing"

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	password := "Password@123"

	_, err := service.Register("test@example.com", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	if _, err := service.Register("dup@example.com", "Password@123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Register("dup@example.com", "Password@123"); err == nil {
		t.Fatal("expected error for duplicate email")
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	user, err := service.Register("inactive@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user.IsActive = false

	if _, err := service.Login("inactive@example.com", "Password@123"); err != ErrAccountDisabled {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	if _, err := service.Register("user@example.com", "Password@123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Login("user@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
