package service

import (
	"errors"
	"testing"
	"time"

	"locallens-server/internal/model"
)

func TestCreateEvent(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)
	creator := createTestUser(t, db, "creator")

	event, err := svc.CreateEvent(creator.ID, CreateEventInput{
		Title:      "  Jazz in the park  ",
		StartsAt:   time.Now().Add(48 * time.Hour),
		Capacity:   30,
		Categories: []string{"Music", "Outdoors"},
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Title != "Jazz in the park" {
		t.Errorf("title = %q, want trimmed", event.Title)
	}
	if event.CreatorID != creator.ID {
		t.Errorf("creator = %d, want %d", event.CreatorID, creator.ID)
	}

	info, err := svc.GetEvent(event.ID, creator.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if len(info.Categories) != 2 {
		t.Errorf("categories = %v, want 2 entries", info.Categories)
	}

	// 同名分类复用，不重复建行
	if _, err := svc.CreateEvent(creator.ID, CreateEventInput{
		Title:      "Another concert",
		StartsAt:   time.Now().Add(72 * time.Hour),
		Categories: []string{"Music"},
	}); err != nil {
		t.Fatalf("create second event: %v", err)
	}
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count != 2 {
		t.Errorf("category rows = %d, want 2", count)
	}
}

func TestCreateEventValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)
	creator := createTestUser(t, db, "creator")

	if _, err := svc.CreateEvent(creator.ID, CreateEventInput{StartsAt: time.Now()}); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing title error = %v, want ErrInvalid", err)
	}
	if _, err := svc.CreateEvent(creator.ID, CreateEventInput{Title: "No date"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing date error = %v, want ErrInvalid", err)
	}
	if _, err := svc.CreateEvent(creator.ID, CreateEventInput{
		Title:    "Bad capacity",
		StartsAt: time.Now(),
		Capacity: -1,
	}); !errors.Is(err, ErrInvalid) {
		t.Errorf("negative capacity error = %v, want ErrInvalid", err)
	}
	if _, err := svc.CreateEvent(0, CreateEventInput{Title: "Anon", StartsAt: time.Now()}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("anonymous error = %v, want ErrNotAuthenticated", err)
	}
}

func TestUpdateEventCreatorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)
	creator := createTestUser(t, db, "creator")
	other := createTestUser(t, db, "other")
	event := createTestEvent(t, db, creator.ID, "Original title", false)

	newTitle := "Renamed"
	if err := svc.UpdateEvent(event.ID, other.ID, UpdateEventInput{Title: &newTitle}); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-creator edit error = %v, want ErrForbidden", err)
	}

	if err := svc.UpdateEvent(event.ID, creator.ID, UpdateEventInput{Title: &newTitle}); err != nil {
		t.Fatalf("creator edit: %v", err)
	}

	info, err := svc.GetEvent(event.ID, creator.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if info.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", info.Title)
	}

	empty := "   "
	if err := svc.UpdateEvent(event.ID, creator.ID, UpdateEventInput{Title: &empty}); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty title error = %v, want ErrInvalid", err)
	}
}

func TestPrivateEventVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)
	invitationSvc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	invited := createTestUser(t, db, "invited")
	stranger := createTestUser(t, db, "stranger")
	event := createTestEvent(t, db, creator.ID, "Secret party", true)

	if _, err := invitationSvc.InviteUser(event.ID, invited.ID, creator.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}

	if _, err := svc.GetEvent(event.ID, creator.ID); err != nil {
		t.Errorf("creator view: %v", err)
	}
	if _, err := svc.GetEvent(event.ID, invited.ID); err != nil {
		t.Errorf("invited view: %v", err)
	}
	if _, err := svc.GetEvent(event.ID, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger view error = %v, want ErrForbidden", err)
	}
}

func TestListEventsVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(db)
	invitationSvc := newInvitationService(db, nil)
	creator := createTestUser(t, db, "creator")
	invited := createTestUser(t, db, "invited")
	stranger := createTestUser(t, db, "stranger")

	createTestEvent(t, db, creator.ID, "Public meetup", false)
	private := createTestEvent(t, db, creator.ID, "Private dinner", true)
	if _, err := invitationSvc.InviteUser(private.ID, invited.ID, creator.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}

	titles := func(userID uint) map[string]bool {
		t.Helper()
		events, err := svc.ListEvents(userID)
		if err != nil {
			t.Fatalf("list events for %d: %v", userID, err)
		}
		set := map[string]bool{}
		for _, e := range events {
			set[e.Title] = true
		}
		return set
	}

	forCreator := titles(creator.ID)
	if !forCreator["Public meetup"] || !forCreator["Private dinner"] {
		t.Errorf("creator sees %v, want both events", forCreator)
	}

	forInvited := titles(invited.ID)
	if !forInvited["Public meetup"] || !forInvited["Private dinner"] {
		t.Errorf("invited sees %v, want both events", forInvited)
	}

	forStranger := titles(stranger.ID)
	if !forStranger["Public meetup"] {
		t.Errorf("stranger misses public event: %v", forStranger)
	}
	if forStranger["Private dinner"] {
		t.Errorf("stranger sees private event: %v", forStranger)
	}
}
