package service

import (
	"errors"
	"testing"

	"locallens-server/internal/repository"
)

func TestGroupMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repository.NewGroupRepository(db), repository.NewUserRepository(db))
	owner := createTestUser(t, db, "owner")
	a := createTestUser(t, db, "member_a")
	b := createTestUser(t, db, "member_b")

	group, err := svc.CreateGroup(owner.ID, "Close friends")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if err := svc.AddMember(group.ID, a.ID, owner.ID); err != nil {
		t.Fatalf("add member a: %v", err)
	}
	if err := svc.AddMember(group.ID, b.ID, owner.ID); err != nil {
		t.Fatalf("add member b: %v", err)
	}

	// 重复添加为Conflict
	if err := svc.AddMember(group.ID, a.ID, owner.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate member error = %v, want ErrConflict", err)
	}

	ids, err := svc.MemberIDs(group.ID, owner.ID)
	if err != nil {
		t.Fatalf("member ids: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("member count = %d, want 2", len(ids))
	}

	if err := svc.RemoveMember(group.ID, a.ID, owner.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	ids, err = svc.MemberIDs(group.ID, owner.ID)
	if err != nil {
		t.Fatalf("member ids after remove: %v", err)
	}
	if len(ids) != 1 || ids[0] != b.ID {
		t.Errorf("members after remove = %v, want [%d]", ids, b.ID)
	}
}

func TestGroupOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repository.NewGroupRepository(db), repository.NewUserRepository(db))
	owner := createTestUser(t, db, "owner")
	outsider := createTestUser(t, db, "outsider")

	group, err := svc.CreateGroup(owner.ID, "Neighbors")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if err := svc.AddMember(group.ID, outsider.ID, outsider.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider add error = %v, want ErrForbidden", err)
	}
	if _, err := svc.ListMembers(group.ID, outsider.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider list error = %v, want ErrForbidden", err)
	}
	if _, err := svc.MemberIDs(group.ID, outsider.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider member ids error = %v, want ErrForbidden", err)
	}

	// 空名称拒绝
	if _, err := svc.CreateGroup(owner.ID, "   "); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty name error = %v, want ErrInvalid", err)
	}
}

func TestListGroupsOnlyOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewGroupService(repository.NewGroupRepository(db), repository.NewUserRepository(db))
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	if _, err := svc.CreateGroup(owner.ID, "Hiking"); err != nil {
		t.Fatalf("create group: %v", err)
	}
	if _, err := svc.CreateGroup(other.ID, "Chess"); err != nil {
		t.Fatalf("create other group: %v", err)
	}

	groups, err := svc.ListGroups(owner.ID)
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Hiking" {
		t.Errorf("owner groups = %+v, want only Hiking", groups)
	}
}
