package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/models"
)

func TestRegisterRejectsDuplicateFields(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.userAuth.Register(ctx, RegisterInput{
		Name:       "alice",
		Email:      "alice@example.com",
		Phone:      "13800000001",
		Password:   "secret123",
		RePassword: "secret123",
		Card:       "6222000011112222",
	})
	if err != nil {
		t.Fatalf("register alice failed: %v", err)
	}

	cases := []struct {
		name    string
		input   RegisterInput
		field   string
		wantErr error
	}{
		{
			name:    "name",
			input:   RegisterInput{Name: "alice", Email: "a2@example.com", Phone: "13800000002"},
			field:   "name",
			wantErr: ErrUserNameExists,
		},
		{
			name:    "email",
			input:   RegisterInput{Name: "bob", Email: "ALICE@example.com", Phone: "13800000003"},
			field:   "email",
			wantErr: ErrEmailExists,
		},
		{
			name:    "phone",
			input:   RegisterInput{Name: "carol", Email: "carol@example.com", Phone: "13800000001"},
			field:   "phone",
			wantErr: ErrPhoneExists,
		},
		{
			name:    "card",
			input:   RegisterInput{Name: "dave", Email: "dave@example.com", Phone: "13800000004", Card: "6222000011112222"},
			field:   "card",
			wantErr: ErrCardExists,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.Password = "secret123"
			tc.input.RePassword = "secret123"
			_, err := f.userAuth.Register(ctx, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected validation error on %s, got %v", tc.field, err)
			}
		})
	}

	var count int64
	if err := f.db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only 1 user row, got %d", count)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	base := RegisterInput{Name: "eve", Email: "eve@example.com", Phone: "13900000000", Password: "secret123", RePassword: "secret123"}

	badPhone := base
	badPhone.Phone = "12000000000"
	if _, err := f.userAuth.Register(ctx, badPhone); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected invalid phone, got %v", err)
	}

	mismatch := base
	mismatch.RePassword = "other123"
	if _, err := f.userAuth.Register(ctx, mismatch); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected password mismatch, got %v", err)
	}

	weak := base
	weak.Password = "abc"
	weak.RePassword = "abc"
	if _, err := f.userAuth.Register(ctx, weak); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}

	badEmail := base
	badEmail.Email = "not-an-email"
	if _, err := f.userAuth.Register(ctx, badEmail); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}
}

func TestLoginWrongPasswordEstablishesNoSession(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	f.registerUser(t, "frank", "frank@example.com", "13500000000")

	result, err := f.userAuth.Login(ctx, LoginInput{Name: "frank", Password: "wrong-password", ClientIP: "10.0.0.1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result on failure")
	}

	var sessions int64
	if err := f.db.Model(&models.UserSession{}).Count(&sessions).Error; err != nil {
		t.Fatalf("count sessions failed: %v", err)
	}
	if sessions != 0 {
		t.Fatalf("expected no session rows, got %d", sessions)
	}

	var logs []models.UserLoginLog
	if err := f.db.Find(&logs).Error; err != nil {
		t.Fatalf("list login logs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != constants.LoginLogStatusFailed || logs[0].FailReason != constants.LoginLogFailReasonInvalidPassword {
		t.Fatalf("unexpected login logs: %+v", logs)
	}

	if _, err := f.userAuth.Login(ctx, LoginInput{Name: "nobody", Password: "secret123"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestLoginAndLogout(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "grace", "grace@example.com", "13400000000")

	result, err := f.userAuth.Login(ctx, LoginInput{Name: "grace", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	identity, err := f.sessions.Resolve(ctx, constants.SessionKindUser, result.Token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if identity.SubjectID != user.ID || identity.Name != "grace" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	f.userAuth.Logout(ctx, result.Token)
	if _, err := f.sessions.Resolve(ctx, constants.SessionKindUser, result.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found after logout, got %v", err)
	}

	f.userAuth.Logout(ctx, result.Token)
	f.userAuth.Logout(ctx, "not-a-token")
	f.userAuth.Logout(ctx, "")
}

func TestChangePasswordDestroysOtherSessions(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "heidi", "heidi@example.com", "13300000000")

	first, err := f.userAuth.Login(ctx, LoginInput{Name: "heidi", Password: "secret123"})
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, err := f.userAuth.Login(ctx, LoginInput{Name: "heidi", Password: "secret123"})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	current, err := f.sessions.Resolve(ctx, constants.SessionKindUser, second.Token)
	if err != nil {
		t.Fatalf("resolve current failed: %v", err)
	}

	if err := f.userAuth.ChangePassword(ctx, user.ID, current.SessionID, "bad-old", "newsecret1"); !errors.Is(err, ErrOldPasswordInvalid) {
		t.Fatalf("expected old password invalid, got %v", err)
	}
	if err := f.userAuth.ChangePassword(ctx, user.ID, current.SessionID, "secret123", "newsecret1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := f.sessions.Resolve(ctx, constants.SessionKindUser, first.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected other session destroyed, got %v", err)
	}
	if _, err := f.sessions.Resolve(ctx, constants.SessionKindUser, second.Token); err != nil {
		t.Fatalf("expected current session kept, got %v", err)
	}
	if _, err := f.userAuth.Login(ctx, LoginInput{Name: "heidi", Password: "newsecret1"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUpdateProfileEnforcesUniqueness(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	f.registerUser(t, "ivan", "ivan@example.com", "13811111111")
	judy := f.registerUser(t, "judy", "judy@example.com", "13822222222")

	taken := "13811111111"
	if _, err := f.userAuth.UpdateProfile(ctx, judy.ID, UpdateProfileInput{Phone: &taken}); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected phone exists, got %v", err)
	}

	address := "Dorm 3, Room 402"
	same := "judy@example.com"
	updated, err := f.userAuth.UpdateProfile(ctx, judy.ID, UpdateProfileInput{Address: &address, Email: &same})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Address != address {
		t.Fatalf("expected address %q, got %q", address, updated.Address)
	}
}
