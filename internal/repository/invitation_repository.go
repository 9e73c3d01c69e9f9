package repository

import (
	"locallens-server/internal/model"

	"gorm.io/gorm"
)

// InvitationRepository 活动邀请仓储
type InvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository 创建InvitationRepository实例
func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create 创建邀请
// (event_id, invited_user_id) 唯一索引负责去重，
// 并发重复邀请时返回 gorm.ErrDuplicatedKey，调用方翻译为Conflict
func (r *InvitationRepository) Create(inv *model.EventInvitation) error {
	return r.db.Create(inv).Error
}

// Exists 判断某用户是否已被邀请参加某活动（私密活动可见性判断用）
func (r *InvitationRepository) Exists(eventID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.EventInvitation{}).
		Where("event_id = ? AND invited_user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListActiveByUser 获取用户的全部未隐藏邀请，按创建时间倒序（最新在前）
func (r *InvitationRepository) ListActiveByUser(userID uint) ([]*model.EventInvitation, error) {
	var invitations []*model.EventInvitation
	err := r.db.Where("invited_user_id = ? AND deleted = ?", userID, false).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}

// CountUnseenByUser 统计用户未读邀请数（Redis计数回源用）
func (r *InvitationRepository) CountUnseenByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.EventInvitation{}).
		Where("invited_user_id = ? AND seen = ? AND deleted = ?", userID, false, false).
		Count(&count).Error
	return count, err
}

// MarkAllSeen 将用户全部邀请置为已读（幂等）
func (r *InvitationRepository) MarkAllSeen(userID uint) error {
	return r.db.Model(&model.EventInvitation{}).
		Where("invited_user_id = ?", userID).
		Update("seen", true).Error
}

// MarkDeleted 软删除某用户在某活动上的邀请，返回受影响行数
func (r *InvitationRepository) MarkDeleted(eventID, userID uint) (int64, error) {
	result := r.db.Model(&model.EventInvitation{}).
		Where("event_id = ? AND invited_user_id = ?", eventID, userID).
		Update("deleted", true)
	return result.RowsAffected, result.Error
}
