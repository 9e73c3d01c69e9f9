package service

import (
	"fmt"
	"strings"

	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/pkg/response"
)

// PlaceService 地点与评价服务
type PlaceService struct {
	placeRepo *repository.PlaceRepository
	userRepo  *repository.UserRepository
}

// NewPlaceService 创建PlaceService实例
func NewPlaceService(placeRepo *repository.PlaceRepository, userRepo *repository.UserRepository) *PlaceService {
	return &PlaceService{
		placeRepo: placeRepo,
		userRepo:  userRepo,
	}
}

// CreatePlace 创建地点
func (s *PlaceService) CreatePlace(actingUserID uint, name, address string, lat, lon *float64) (*model.Place, error) {
	if actingUserID == 0 {
		return nil, ErrNotAuthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: place name is required", ErrInvalid)
	}

	place := &model.Place{
		Name:    name,
		Address: address,
		Lat:     lat,
		Lon:     lon,
	}
	if err := s.placeRepo.CreatePlace(place); err != nil {
		return nil, storeError(err)
	}
	return place, nil
}

// ListPlaces 获取全部地点
func (s *PlaceService) ListPlaces() ([]*model.Place, error) {
	places, err := s.placeRepo.ListPlaces()
	if err != nil {
		return nil, storeError(err)
	}
	return places, nil
}

// AddReview 添加地点评价
// 评分限定1-5，越界为Invalid且不写入
func (s *PlaceService) AddReview(actingUserID, placeID uint, rating int, comment string) (*model.Review, error) {
	if actingUserID == 0 {
		return nil, ErrNotAuthenticated
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}

	if _, err := s.placeRepo.GetPlaceByID(placeID); err != nil {
		return nil, storeError(err)
	}

	review := &model.Review{
		UserID:  actingUserID,
		PlaceID: placeID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.placeRepo.CreateReview(review); err != nil {
		return nil, storeError(err)
	}
	return review, nil
}

// ListReviews 获取地点的评价列表（带作者公开信息）
func (s *PlaceService) ListReviews(placeID uint) ([]*response.ReviewInfo, error) {
	if _, err := s.placeRepo.GetPlaceByID(placeID); err != nil {
		return nil, storeError(err)
	}

	reviews, err := s.placeRepo.ListReviewsByPlace(placeID)
	if err != nil {
		return nil, storeError(err)
	}

	// 批量取作者信息
	authorIDs := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		authorIDs = append(authorIDs, r.UserID)
	}
	authors, err := s.userRepo.GetByIDs(authorIDs)
	if err != nil {
		return nil, storeError(err)
	}
	authorByID := make(map[uint]*model.User, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a
	}

	views := make([]*response.ReviewInfo, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, response.FilterReviewInfo(r, authorByID[r.UserID]))
	}
	return views, nil
}
