package repository

import (
	"locallens-server/internal/model"

	"gorm.io/gorm"
)

// EventRepository 活动与分类仓储
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建EventRepository实例
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create 创建活动并关联分类（同一事务）
func (r *EventRepository) Create(event *model.Event, categoryIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		for _, cid := range categoryIDs {
			if err := tx.Create(&model.EventCategory{
				EventID:    event.ID,
				CategoryID: cid,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID 根据ID获取活动
func (r *EventRepository) GetByID(id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateFields 更新活动字段
func (r *EventRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Event{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// ListVisible 获取对某用户可见的活动：
// 公开活动，或自己创建的，或自己受邀的私密活动
func (r *EventRepository) ListVisible(userID uint) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.Where(
		"is_private = ? OR creator_id = ? OR id IN (?)",
		false,
		userID,
		r.db.Model(&model.EventInvitation{}).
			Select("event_id").
			Where("invited_user_id = ?", userID),
	).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

// CountCreatedBy 统计用户创建的活动数
func (r *EventRepository) CountCreatedBy(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Event{}).
		Where("creator_id = ?", userID).
		Count(&count).Error
	return count, err
}

// EnsureCategories 按名称获取或创建分类，返回分类ID
func (r *EventRepository) EnsureCategories(names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var category model.Category
		if err := r.db.Where(model.Category{Name: name}).
			FirstOrCreate(&category).Error; err != nil {
			return nil, err
		}
		ids = append(ids, category.ID)
	}
	return ids, nil
}

// ListCategoryNames 获取活动关联的分类名称
func (r *EventRepository) ListCategoryNames(eventID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&model.Category{}).
		Joins("JOIN event_category ON event_category.category_id = category.id").
		Where("event_category.event_id = ?", eventID).
		Pluck("category.name", &names).Error
	return names, err
}
