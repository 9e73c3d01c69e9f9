package service

import (
	"errors"
	"testing"
	"time"

	"locallens-server/config"
	"locallens-server/internal/repository"
	"locallens-server/pkg/jwt"

	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	jwtSvc := jwt.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "locallens",
	})
	return NewUserService(repository.NewUserRepository(db), jwtSvc)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	user, token, err := svc.Register("Dana", "dana", "dana@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Error("register should issue a token")
	}
	if user.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}

	// 用户名或邮箱均可登录
	if _, _, err := svc.Login("dana", "secret123"); err != nil {
		t.Errorf("login by username: %v", err)
	}
	if _, _, err := svc.Login("dana@example.com", "secret123"); err != nil {
		t.Errorf("login by email: %v", err)
	}
	if _, _, err := svc.Login("dana", "wrong"); !errors.Is(err, ErrInvalid) {
		t.Errorf("wrong password error = %v, want ErrInvalid", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	if _, _, err := svc.Register("Dana", "dana", "dana@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Register("Other", "dana", "other@example.com", "secret123"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate username error = %v, want ErrConflict", err)
	}
	if _, _, err := svc.Register("Other", "other", "dana@example.com", "secret123"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate email error = %v, want ErrConflict", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	if _, _, err := svc.Register("Dana", "", "dana@example.com", "secret123"); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing username error = %v, want ErrInvalid", err)
	}
	if _, _, err := svc.Register("Dana", "dana", "dana@example.com", ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing password error = %v, want ErrInvalid", err)
	}
}

func TestUpdateLocationSharing(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := createTestUser(t, db, "mover")

	lat, lon := 37.7599, -122.4148

	// 开启共享必须带坐标
	if err := svc.UpdateLocation(user.ID, true, nil, nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("share without coords error = %v, want ErrInvalid", err)
	}

	if err := svc.UpdateLocation(user.ID, true, &lat, &lon); err != nil {
		t.Fatalf("enable sharing: %v", err)
	}
	got, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !got.ShareLocation || got.Lat == nil || *got.Lat != lat {
		t.Errorf("profile after enable = share=%v lat=%v", got.ShareLocation, got.Lat)
	}

	// 关闭共享清空坐标
	if err := svc.UpdateLocation(user.ID, false, nil, nil); err != nil {
		t.Fatalf("disable sharing: %v", err)
	}
	got, err = svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.ShareLocation || got.Lat != nil || got.Lon != nil {
		t.Errorf("profile after disable = share=%v lat=%v lon=%v, want cleared", got.ShareLocation, got.Lat, got.Lon)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	user := createTestUser(t, db, "editor")

	name := "  New Name "
	if err := svc.UpdateProfile(user.ID, UpdateProfileInput{Name: &name}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	got, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("name = %q, want trimmed New Name", got.Name)
	}
	// 未提供的字段不变
	if got.Username != "editor" {
		t.Errorf("username = %q, want unchanged", got.Username)
	}

	// 无字段提供时为无操作
	if err := svc.UpdateProfile(user.ID, UpdateProfileInput{}); err != nil {
		t.Errorf("empty update: %v", err)
	}
}
