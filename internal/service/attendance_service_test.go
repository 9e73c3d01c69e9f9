package service

import (
	"errors"
	"testing"

	"locallens-server/internal/model"
)

func TestSetAttendanceUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	creator := createTestUser(t, db, "creator")
	guest := createTestUser(t, db, "guest")
	event := createTestEvent(t, db, creator.ID, "Street food tour", false)

	if err := svc.SetAttendance(event.ID, guest.ID, model.AttendanceGoing); err != nil {
		t.Fatalf("set going: %v", err)
	}
	// 重复提交覆盖，不保留历史
	if err := svc.SetAttendance(event.ID, guest.ID, model.AttendanceDeclined); err != nil {
		t.Fatalf("set declined: %v", err)
	}

	var rows []model.EventAttendance
	if err := db.Where("event_id = ?", event.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load attendance: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("attendance rows = %d, want 1", len(rows))
	}
	if rows[0].Status != model.AttendanceDeclined {
		t.Errorf("status = %q, want declined", rows[0].Status)
	}
}

func TestSetAttendanceValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	creator := createTestUser(t, db, "creator")
	guest := createTestUser(t, db, "guest")
	event := createTestEvent(t, db, creator.ID, "Trivia night", false)

	if err := svc.SetAttendance(event.ID, guest.ID, "interested"); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad status error = %v, want ErrInvalid", err)
	}
	if err := svc.SetAttendance(999, guest.ID, model.AttendanceGoing); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing event error = %v, want ErrNotFound", err)
	}
	if err := svc.SetAttendance(event.ID, 0, model.AttendanceGoing); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("anonymous error = %v, want ErrNotAuthenticated", err)
	}
}

func TestSetAttendancePrivateEvent(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	invitationSvc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	invited := createTestUser(t, db, "invited")
	stranger := createTestUser(t, db, "stranger")
	event := createTestEvent(t, db, creator.ID, "Private dinner", true)

	if _, err := invitationSvc.InviteUser(event.ID, invited.ID, creator.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}

	// 创建者与受邀用户可报名，未受邀用户不可
	if err := svc.SetAttendance(event.ID, creator.ID, model.AttendanceGoing); err != nil {
		t.Errorf("creator rsvp: %v", err)
	}
	if err := svc.SetAttendance(event.ID, invited.ID, model.AttendanceGoing); err != nil {
		t.Errorf("invited rsvp: %v", err)
	}
	if err := svc.SetAttendance(event.ID, stranger.ID, model.AttendanceGoing); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger rsvp error = %v, want ErrForbidden", err)
	}
}

func TestGetAttendingUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	creator := createTestUser(t, db, "creator")
	going := createTestUser(t, db, "going_user")
	maybe := createTestUser(t, db, "maybe_user")
	event := createTestEvent(t, db, creator.ID, "Morning run", false)

	if err := svc.SetAttendance(event.ID, going.ID, model.AttendanceGoing); err != nil {
		t.Fatalf("set going: %v", err)
	}
	if err := svc.SetAttendance(event.ID, maybe.ID, model.AttendanceMaybe); err != nil {
		t.Fatalf("set maybe: %v", err)
	}

	attendees, err := svc.GetAttendingUsers(event.ID)
	if err != nil {
		t.Fatalf("get attending users: %v", err)
	}
	if len(attendees) != 1 {
		t.Fatalf("attendees = %d, want 1 (going only)", len(attendees))
	}
	if attendees[0].ID != going.ID {
		t.Errorf("attendee = %d, want %d", attendees[0].ID, going.ID)
	}
}

func TestGetUserEventStats(t *testing.T) {
	db := newTestDB(t)
	svc := newAttendanceService(db)
	creator := createTestUser(t, db, "creator")
	fresh := createTestUser(t, db, "fresh")

	// 新用户统计为0/0
	stats, err := svc.GetUserEventStats(fresh.ID)
	if err != nil {
		t.Fatalf("fresh user stats: %v", err)
	}
	if stats.CreatedEvents != 0 || stats.AttendedEvents != 0 {
		t.Errorf("fresh stats = %+v, want 0/0", stats)
	}

	e1 := createTestEvent(t, db, creator.ID, "Stats event one", false)
	createTestEvent(t, db, creator.ID, "Stats event two", false)
	if err := svc.SetAttendance(e1.ID, creator.ID, model.AttendanceGoing); err != nil {
		t.Fatalf("set attendance: %v", err)
	}

	stats, err = svc.GetUserEventStats(creator.ID)
	if err != nil {
		t.Fatalf("creator stats: %v", err)
	}
	if stats.CreatedEvents != 2 {
		t.Errorf("created = %d, want 2", stats.CreatedEvents)
	}
	if stats.AttendedEvents != 1 {
		t.Errorf("attended = %d, want 1", stats.AttendedEvents)
	}
}
