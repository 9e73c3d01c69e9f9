package repository

import (
	"locallens-server/internal/model"

	"gorm.io/gorm"
)

// FriendRepository 好友申请与好友关系仓储
type FriendRepository struct {
	db *gorm.DB
}

// NewFriendRepository 创建FriendRepository实例
func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// CreateRequest 创建好友申请
// 同一对用户的待处理申请由唯一索引去重，冲突时返回 gorm.ErrDuplicatedKey
func (r *FriendRepository) CreateRequest(req *model.FriendRequest) error {
	return r.db.Create(req).Error
}

// GetRequestByID 根据ID获取好友申请
func (r *FriendRepository) GetRequestByID(id uint) (*model.FriendRequest, error) {
	var req model.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// AcceptRequest 接受好友申请
// 同一事务内写入两条对称好友关系并把申请置为accepted，
// 任一步失败则整体回滚，不允许出现单向好友或状态未翻转的中间态
func (r *FriendRepository) AcceptRequest(req *model.FriendRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Friendship{
			UserID:   req.FromUserID,
			FriendID: req.ToUserID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.Friendship{
			UserID:   req.ToUserID,
			FriendID: req.FromUserID,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&model.FriendRequest{}).
			Where("id = ?", req.ID).
			Updates(map[string]interface{}{
				"status": model.FriendRequestAccepted,
				"active": nil,
			}).Error
	})
}

// ResolveRequest 结案好友申请（拒绝），释放待处理唯一标记
func (r *FriendRepository) ResolveRequest(id uint, status string) error {
	return r.db.Model(&model.FriendRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": status,
			"active": nil,
		}).Error
}

// DeleteRequest 删除好友申请（发起方撤回）
func (r *FriendRepository) DeleteRequest(id uint) error {
	return r.db.Delete(&model.FriendRequest{}, id).Error
}

// FriendshipExists 判断两用户间是否已是好友
func (r *FriendRepository) FriendshipExists(userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}

// ListFriendIDs 获取用户的全部好友ID
func (r *FriendRepository) ListFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Friendship{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("friend_id", &ids).Error
	return ids, err
}

// ListPendingByUser 获取用户相关的全部待处理申请（双向）
func (r *FriendRepository) ListPendingByUser(userID uint) ([]*model.FriendRequest, error) {
	var requests []*model.FriendRequest
	err := r.db.Where("(from_user_id = ? OR to_user_id = ?) AND status = ?",
		userID, userID, model.FriendRequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
