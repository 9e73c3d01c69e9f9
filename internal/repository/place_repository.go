package repository

import (
	"locallens-server/internal/model"

	"gorm.io/gorm"
)

// PlaceRepository 地点与评价仓储
type PlaceRepository struct {
	db *gorm.DB
}

// NewPlaceRepository 创建PlaceRepository实例
func NewPlaceRepository(db *gorm.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// CreatePlace 创建地点
func (r *PlaceRepository) CreatePlace(place *model.Place) error {
	return r.db.Create(place).Error
}

// GetPlaceByID 根据ID获取地点
func (r *PlaceRepository) GetPlaceByID(id uint) (*model.Place, error) {
	var place model.Place
	if err := r.db.First(&place, id).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

// ListPlaces 获取全部地点
func (r *PlaceRepository) ListPlaces() ([]*model.Place, error) {
	var places []*model.Place
	err := r.db.Order("name ASC").Find(&places).Error
	return places, err
}

// CreateReview 创建评价
func (r *PlaceRepository) CreateReview(review *model.Review) error {
	return r.db.Create(review).Error
}

// ListReviewsByPlace 获取地点的全部评价，最新在前
func (r *PlaceRepository) ListReviewsByPlace(placeID uint) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Where("place_id = ?", placeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
