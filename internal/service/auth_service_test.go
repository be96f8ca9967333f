package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository/memory"
)

func TestRegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(memory.NewUserRepository(store), []byte("test-secret"))
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Email:    "new.surveyor@heritage.org",
		Name:     "New Surveyor",
		Password: "long-enough-password",
		Role:     model.RoleSurveyor,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.RoleSurveyor {
		t.Errorf("role = %q", user.Role)
	}

	token, err := svc.Login(ctx, LoginRequest{Email: "new.surveyor@heritage.org", Password: "long-enough-password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token.Token == "" {
		t.Error("empty JWT")
	}
	if token.User.ID != user.ID {
		t.Errorf("login user %s, want %s", token.User.ID, user.ID)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(memory.NewUserRepository(store), []byte("test-secret"))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "x@heritage.org",
		Name:     "X",
		Password: "long-enough-password",
		Role:     "castellan",
	})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(memory.NewUserRepository(store), []byte("test-secret"))
	ctx := context.Background()

	req := RegisterRequest{
		Email:    "dup@heritage.org",
		Name:     "Dup",
		Password: "long-enough-password",
		Role:     model.RoleBudgetHolder,
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, req); err == nil {
		t.Fatal("expected error for duplicate email")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(memory.NewUserRepository(store), []byte("test-secret"))
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		Email:    "a@heritage.org",
		Name:     "A",
		Password: "correct-password-1",
		Role:     model.RoleAdmin,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "a@heritage.org", Password: "wrong-password"}); err == nil {
		t.Fatal("expected error for wrong password")
	}
}
