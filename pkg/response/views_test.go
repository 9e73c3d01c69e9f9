package response

import (
	"testing"
	"time"

	"locallens-server/internal/model"
)

func TestFilterPublicUserDefaults(t *testing.T) {
	// 名称缺失 -> Unknown；用户名缺失 -> 邮箱前缀
	view := FilterPublicUser(&model.User{
		ID:    1,
		Email: "kim@example.com",
	})
	if view.Name != "Unknown" {
		t.Errorf("name = %q, want Unknown", view.Name)
	}
	if view.Username != "kim" {
		t.Errorf("username = %q, want kim", view.Username)
	}
	if view.ImageURL != "" {
		t.Errorf("image = %q, want empty", view.ImageURL)
	}

	// 邮箱也缺失 -> unknown
	view = FilterPublicUser(&model.User{ID: 2})
	if view.Username != "unknown" {
		t.Errorf("username = %q, want unknown", view.Username)
	}

	if FilterPublicUser(nil) != nil {
		t.Error("nil user should project to nil")
	}
}

func TestFilterPublicUserLocationGating(t *testing.T) {
	lat, lon := 37.77, -122.42
	user := &model.User{
		ID:            3,
		Name:          "Sam",
		Username:      "sam",
		LocationLabel: "Mission District",
		Lat:           &lat,
		Lon:           &lon,
	}

	// 未开启共享时不暴露位置
	view := FilterPublicUser(user)
	if view.LocationLabel != "" || view.Lat != nil || view.Lon != nil {
		t.Errorf("location leaked without sharing: %+v", view)
	}

	user.ShareLocation = true
	view = FilterPublicUser(user)
	if view.LocationLabel != "Mission District" || view.Lat == nil || *view.Lat != lat {
		t.Errorf("location missing with sharing: %+v", view)
	}
}

func TestFilterFriendRequestInfoDirection(t *testing.T) {
	req := &model.FriendRequest{
		ID:         10,
		FromUserID: 1,
		ToUserID:   2,
		Status:     model.FriendRequestPending,
		CreatedAt:  time.Now(),
	}
	other := &model.User{ID: 1, Name: "Sender", Username: "sender"}

	// 接收者视角为incoming
	view := FilterFriendRequestInfo(req, 2, other)
	if view.Direction != DirectionIncoming {
		t.Errorf("direction = %q, want incoming", view.Direction)
	}

	// 发起者视角为outgoing
	view = FilterFriendRequestInfo(req, 1, &model.User{ID: 2, Username: "recipient"})
	if view.Direction != DirectionOutgoing {
		t.Errorf("direction = %q, want outgoing", view.Direction)
	}
}

func TestFilterNotificationInfoMissingEvent(t *testing.T) {
	inv := &model.EventInvitation{
		ID:            1,
		EventID:       42,
		InvitedUserID: 2,
		CreatedAt:     time.Now(),
	}

	// 活动已删除时以兜底内容展示
	view := FilterNotificationInfo(inv, nil, 0)
	if view.EventTitle != "Unknown" {
		t.Errorf("title = %q, want Unknown", view.EventTitle)
	}
	if view.EventID != 42 {
		t.Errorf("event id = %d, want 42", view.EventID)
	}

	event := &model.Event{
		Title:         "Rooftop movie",
		StartsAt:      time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
		LocationLabel: "SoMa",
	}
	view = FilterNotificationInfo(inv, event, 7)
	if view.EventTitle != "Rooftop movie" {
		t.Errorf("title = %q, want event title", view.EventTitle)
	}
	if view.AttendeeCount != 7 {
		t.Errorf("attendee count = %d, want 7", view.AttendeeCount)
	}
}
