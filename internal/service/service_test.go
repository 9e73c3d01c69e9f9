package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/pkg/password"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试独立的内存数据库
// TranslateError与生产配置保持一致，唯一约束冲突同样表现为 gorm.ErrDuplicatedKey
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.FriendGroup{},
		&model.FriendGroupMember{},
		&model.Event{},
		&model.Category{},
		&model.EventCategory{},
		&model.EventInvitation{},
		&model.EventAttendance{},
		&model.Place{},
		&model.Review{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// createTestUser 直接落库创建用户（绕过注册流程）
func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	hash, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		LastActiveAt: time.Now(),
	}
	if err := repository.NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("create test user %s: %v", username, err)
	}
	return user
}

// createTestEvent 直接落库创建活动
func createTestEvent(t *testing.T, db *gorm.DB, creatorID uint, title string, private bool) *model.Event {
	t.Helper()

	event := &model.Event{
		Title:     title,
		CreatorID: creatorID,
		StartsAt:  time.Now().Add(24 * time.Hour),
		Capacity:  20,
		IsPrivate: private,
	}
	if err := repository.NewEventRepository(db).Create(event, nil); err != nil {
		t.Fatalf("create test event %s: %v", title, err)
	}
	return event
}

func newFriendService(db *gorm.DB) *FriendService {
	return NewFriendService(
		repository.NewFriendRepository(db),
		repository.NewUserRepository(db),
	)
}

func newInvitationService(db *gorm.DB, policy InvitePolicy) *InvitationService {
	return NewInvitationService(
		repository.NewInvitationRepository(db),
		repository.NewEventRepository(db),
		repository.NewAttendanceRepository(db),
		repository.NewUserRepository(db),
		policy,
	)
}

func newAttendanceService(db *gorm.DB) *AttendanceService {
	return NewAttendanceService(
		repository.NewAttendanceRepository(db),
		repository.NewEventRepository(db),
		repository.NewInvitationRepository(db),
		repository.NewUserRepository(db),
	)
}

func newEventService(db *gorm.DB) *EventService {
	return NewEventService(
		repository.NewEventRepository(db),
		repository.NewInvitationRepository(db),
		repository.NewAttendanceRepository(db),
	)
}
