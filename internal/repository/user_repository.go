package repository

import (
	"time"

	"locallens-server/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户数据仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs 批量获取用户（列表投影用）
func (r *UserRepository) GetByIDs(ids []uint) ([]*model.User, error) {
	var users []*model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// GetByUsernameOrEmail 根据用户名或邮箱获取用户
func (r *UserRepository) GetByUsernameOrEmail(identifier string) (*model.User, error) {
	var u model.User
	if err := r.db.Where("username = ? OR email = ?", identifier, identifier).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateOnline 更新在线标记与最近活跃时间
func (r *UserRepository) UpdateOnline(id uint, online bool) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"online":         online,
			"last_active_at": time.Now(),
		}).Error
}

// UpdateProfile 更新用户资料字段
func (r *UserRepository) UpdateProfile(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}
