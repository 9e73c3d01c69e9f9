package service

import (
	"fmt"
	"strings"

	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/pkg/response"
)

// GroupService 好友分组服务
// 分组供按组邀请使用；群主不会隐式成为成员，成员关系必须显式添加
type GroupService struct {
	groupRepo *repository.GroupRepository
	userRepo  *repository.UserRepository
}

// NewGroupService 创建GroupService实例
func NewGroupService(groupRepo *repository.GroupRepository, userRepo *repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroup 创建好友分组
func (s *GroupService) CreateGroup(actingUserID uint, name string) (*model.FriendGroup, error) {
	if actingUserID == 0 {
		return nil, ErrNotAuthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalid)
	}

	group := &model.FriendGroup{
		Name:    name,
		OwnerID: actingUserID,
	}
	if err := s.groupRepo.CreateGroup(group); err != nil {
		return nil, storeError(err)
	}
	return group, nil
}

// AddMember 添加分组成员，仅群主可操作
// 重复添加为Conflict
func (s *GroupService) AddMember(groupID, userID, actingUserID uint) error {
	if actingUserID == 0 {
		return ErrNotAuthenticated
	}

	group, err := s.groupRepo.GetGroupByID(groupID)
	if err != nil {
		return storeError(err)
	}
	if group.OwnerID != actingUserID {
		return fmt.Errorf("%w: only the owner can manage members", ErrForbidden)
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return storeError(err)
	}

	if err := s.groupRepo.AddMember(&model.FriendGroupMember{
		GroupID: groupID,
		UserID:  userID,
	}); err != nil {
		return storeError(err)
	}
	return nil
}

// RemoveMember 移除分组成员，仅群主可操作
func (s *GroupService) RemoveMember(groupID, userID, actingUserID uint) error {
	if actingUserID == 0 {
		return ErrNotAuthenticated
	}

	group, err := s.groupRepo.GetGroupByID(groupID)
	if err != nil {
		return storeError(err)
	}
	if group.OwnerID != actingUserID {
		return fmt.Errorf("%w: only the owner can manage members", ErrForbidden)
	}

	if err := s.groupRepo.RemoveMember(groupID, userID); err != nil {
		return storeError(err)
	}
	return nil
}

// ListGroups 获取actor拥有的全部分组
func (s *GroupService) ListGroups(actingUserID uint) ([]*model.FriendGroup, error) {
	if actingUserID == 0 {
		return nil, ErrNotAuthenticated
	}
	groups, err := s.groupRepo.ListGroupsByOwner(actingUserID)
	if err != nil {
		return nil, storeError(err)
	}
	return groups, nil
}

// ListMembers 获取分组成员（公开信息投影），仅群主可查看
func (s *GroupService) ListMembers(groupID, actingUserID uint) ([]*response.PublicUser, error) {
	if actingUserID == 0 {
		return nil, ErrNotAuthenticated
	}

	group, err := s.groupRepo.GetGroupByID(groupID)
	if err != nil {
		return nil, storeError(err)
	}
	if group.OwnerID != actingUserID {
		return nil, fmt.Errorf("%w: only the owner can view members", ErrForbidden)
	}

	ids, err := s.groupRepo.ListMemberIDs(groupID)
	if err != nil {
		return nil, storeError(err)
	}
	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, storeError(err)
	}

	members := make([]*response.PublicUser, 0, len(users))
	for _, u := range users {
		members = append(members, response.FilterPublicUser(u))
	}
	return members, nil
}

// MemberIDs 获取分组成员ID（按组邀请时解析目标集合用），仅群主可用
func (s *GroupService) MemberIDs(groupID, actingUserID uint) ([]uint, error) {
	if actingUserID == 0 {
		return nil, ErrNotAuthenticated
	}

	group, err := s.groupRepo.GetGroupByID(groupID)
	if err != nil {
		return nil, storeError(err)
	}
	if group.OwnerID != actingUserID {
		return nil, fmt.Errorf("%w: only the owner can use this group", ErrForbidden)
	}

	ids, err := s.groupRepo.ListMemberIDs(groupID)
	if err != nil {
		return nil, storeError(err)
	}
	return ids, nil
}
