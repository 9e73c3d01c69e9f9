package repository

import (
	"locallens-server/internal/model"

	"gorm.io/gorm"
)

// GroupRepository 好友分组仓储
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建GroupRepository实例
func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateGroup 创建好友分组
func (r *GroupRepository) CreateGroup(group *model.FriendGroup) error {
	return r.db.Create(group).Error
}

// GetGroupByID 根据ID获取分组
func (r *GroupRepository) GetGroupByID(id uint) (*model.FriendGroup, error) {
	var group model.FriendGroup
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// ListGroupsByOwner 获取用户拥有的全部分组
func (r *GroupRepository) ListGroupsByOwner(ownerID uint) ([]*model.FriendGroup, error) {
	var groups []*model.FriendGroup
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

// AddMember 添加分组成员
// (group_id, user_id) 唯一，重复添加返回 gorm.ErrDuplicatedKey
func (r *GroupRepository) AddMember(member *model.FriendGroupMember) error {
	return r.db.Create(member).Error
}

// RemoveMember 移除分组成员
func (r *GroupRepository) RemoveMember(groupID, userID uint) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.FriendGroupMember{}).Error
}

// ListMemberIDs 获取分组全部成员ID
func (r *GroupRepository) ListMemberIDs(groupID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.FriendGroupMember{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &ids).Error
	return ids, err
}
