package service

import (
	"errors"
	"testing"

	"locallens-server/internal/model"
)

func TestInviteUser(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	guest := createTestUser(t, db, "guest")
	event := createTestEvent(t, db, creator.ID, "BBQ at the park", false)

	inv, err := svc.InviteUser(event.ID, guest.ID, creator.ID)
	if err != nil {
		t.Fatalf("invite user: %v", err)
	}
	if inv.Seen {
		t.Error("new invitation should be unseen")
	}

	// 重复邀请冲突，且表中不产生新行
	if _, err := svc.InviteUser(event.ID, guest.ID, creator.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate invite error = %v, want ErrConflict", err)
	}
	var count int64
	db.Model(&model.EventInvitation{}).Count(&count)
	if count != 1 {
		t.Errorf("invitation rows = %d, want 1", count)
	}
}

func TestInviteUserAuthorization(t *testing.T) {
	db := newTestDB(t)
	creator := createTestUser(t, db, "creator")
	guest := createTestUser(t, db, "guest")
	stranger := createTestUser(t, db, "stranger")
	event := createTestEvent(t, db, creator.ID, "Book club", false)

	// 默认策略：仅创建者可邀请
	svc := newInvitationService(db, nil)
	if _, err := svc.InviteUser(event.ID, guest.ID, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger invite error = %v, want ErrForbidden", err)
	}

	// 开放策略下任何已认证用户都可邀请
	open := newInvitationService(db, OpenInvitePolicy)
	if _, err := open.InviteUser(event.ID, guest.ID, stranger.ID); err != nil {
		t.Errorf("open policy invite: %v", err)
	}
}

func TestInviteUserSelfAndUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	event := createTestEvent(t, db, creator.ID, "Picnic", false)

	if _, err := svc.InviteUser(event.ID, creator.ID, creator.ID); !errors.Is(err, ErrInvalid) {
		t.Errorf("self invite error = %v, want ErrInvalid", err)
	}
	if _, err := svc.InviteUser(event.ID, 999, creator.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown invitee error = %v, want ErrNotFound", err)
	}
	if _, err := svc.InviteUser(999, creator.ID+1, creator.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown event error = %v, want ErrNotFound", err)
	}
}

func TestInviteGroupSkipsAlreadyInvited(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	a := createTestUser(t, db, "member_a")
	b := createTestUser(t, db, "member_b")
	c := createTestUser(t, db, "member_c")
	event := createTestEvent(t, db, creator.ID, "Game night", false)

	// b 已被单独邀请过
	if _, err := svc.InviteUser(event.ID, b.ID, creator.ID); err != nil {
		t.Fatalf("pre-invite b: %v", err)
	}

	// 批量邀请包含actor自身与已邀请成员，二者都应跳过
	created, err := svc.InviteGroup(event.ID, []uint{a.ID, b.ID, c.ID, creator.ID}, creator.ID)
	if err != nil {
		t.Fatalf("invite group: %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2", created)
	}

	var count int64
	db.Model(&model.EventInvitation{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 3 {
		t.Errorf("invitation rows = %d, want 3", count)
	}
}

func TestMarkAllSeenIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	guest := createTestUser(t, db, "guest")
	e1 := createTestEvent(t, db, creator.ID, "Event one", false)
	e2 := createTestEvent(t, db, creator.ID, "Event two", false)

	if _, err := svc.InviteUser(e1.ID, guest.ID, creator.ID); err != nil {
		t.Fatalf("invite e1: %v", err)
	}
	if _, err := svc.InviteUser(e2.ID, guest.ID, creator.ID); err != nil {
		t.Fatalf("invite e2: %v", err)
	}

	count, err := svc.GetUnseenCount(guest.ID)
	if err != nil {
		t.Fatalf("get unseen count: %v", err)
	}
	if count != 2 {
		t.Errorf("unseen = %d, want 2", count)
	}

	for i := 0; i < 2; i++ {
		if err := svc.MarkAllSeen(guest.ID); err != nil {
			t.Fatalf("mark all seen (round %d): %v", i+1, err)
		}
	}

	count, err = svc.GetUnseenCount(guest.ID)
	if err != nil {
		t.Fatalf("get unseen count after seen: %v", err)
	}
	if count != 0 {
		t.Errorf("unseen after seen = %d, want 0", count)
	}
}

func TestMarkDeletedHidesNotification(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	guest := createTestUser(t, db, "guest")
	event := createTestEvent(t, db, creator.ID, "Hidden event", false)

	if _, err := svc.InviteUser(event.ID, guest.ID, creator.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if err := svc.MarkDeleted(event.ID, guest.ID); err != nil {
		t.Fatalf("mark deleted: %v", err)
	}

	notifications, err := svc.ListNotifications(guest.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("notifications after delete = %d, want 0", len(notifications))
	}

	// 记录仍在表中（软删除）
	var count int64
	db.Model(&model.EventInvitation{}).Count(&count)
	if count != 1 {
		t.Errorf("invitation rows = %d, want 1", count)
	}

	// 没有可隐藏的邀请时返回NotFound
	if err := svc.MarkDeleted(999, guest.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing error = %v, want ErrNotFound", err)
	}
}

func TestListNotificationsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, nil)
	attendanceSvc := newAttendanceService(db)
	creator := createTestUser(t, db, "creator")
	guest := createTestUser(t, db, "guest")
	joiner := createTestUser(t, db, "joiner")
	first := createTestEvent(t, db, creator.ID, "First event", false)
	second := createTestEvent(t, db, creator.ID, "Second event", false)

	if _, err := svc.InviteUser(first.ID, guest.ID, creator.ID); err != nil {
		t.Fatalf("invite first: %v", err)
	}
	if _, err := svc.InviteUser(second.ID, guest.ID, creator.ID); err != nil {
		t.Fatalf("invite second: %v", err)
	}

	// second有一名确认参加者
	if err := attendanceSvc.SetAttendance(second.ID, joiner.ID, model.AttendanceGoing); err != nil {
		t.Fatalf("set attendance: %v", err)
	}

	notifications, err := svc.ListNotifications(guest.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("notifications = %d, want 2", len(notifications))
	}

	byTitle := map[string]int64{}
	for _, n := range notifications {
		byTitle[n.EventTitle] = n.AttendeeCount
	}
	if got, ok := byTitle["Second event"]; !ok || got != 1 {
		t.Errorf("second event attendee count = %d (present=%v), want 1", got, ok)
	}
	if got := byTitle["First event"]; got != 0 {
		t.Errorf("first event attendee count = %d, want 0", got)
	}
}

func TestListNotificationsForDeletedEvent(t *testing.T) {
	db := newTestDB(t)
	svc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	guest := createTestUser(t, db, "guest")
	event := createTestEvent(t, db, creator.ID, "Doomed event", false)

	if _, err := svc.InviteUser(event.ID, guest.ID, creator.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}

	// 活动被删除后通知仍保留，以兜底标题展示
	if err := db.Delete(&model.Event{}, event.ID).Error; err != nil {
		t.Fatalf("delete event: %v", err)
	}

	notifications, err := svc.ListNotifications(guest.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifications))
	}
	if notifications[0].EventTitle != "Unknown" {
		t.Errorf("event title = %q, want Unknown", notifications[0].EventTitle)
	}
}
