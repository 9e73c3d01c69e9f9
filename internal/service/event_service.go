package service

import (
	"fmt"
	"strings"
	"time"

	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/pkg/redis"
	"locallens-server/pkg/response"
)

// EventService 活动服务
type EventService struct {
	eventRepo      *repository.EventRepository
	invitationRepo *repository.InvitationRepository
	attendanceRepo *repository.AttendanceRepository
}

// NewEventService 创建EventService实例
func NewEventService(
	eventRepo *repository.EventRepository,
	invitationRepo *repository.InvitationRepository,
	attendanceRepo *repository.AttendanceRepository,
) *EventService {
	return &EventService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		attendanceRepo: attendanceRepo,
	}
}

// CreateEventInput 创建活动的输入
type CreateEventInput struct {
	Title         string
	Description   string
	LocationLabel string
	Lat           *float64
	Lon           *float64
	StartsAt      time.Time
	Capacity      int
	IsPrivate     bool
	ImageURL      string
	Categories    []string
}

// CreateEvent 创建活动
// 创建者即actor；分类按名称取或建后关联
func (s *EventService) CreateEvent(actingUserID uint, input CreateEventInput) (*model.Event, error) {
	if actingUserID == 0 {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if input.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: starts_at is required", ErrInvalid)
	}
	if input.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", ErrInvalid)
	}

	categoryIDs, err := s.eventRepo.EnsureCategories(input.Categories)
	if err != nil {
		return nil, storeError(err)
	}

	event := &model.Event{
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		CreatorID:     actingUserID,
		LocationLabel: input.LocationLabel,
		Lat:           input.Lat,
		Lon:           input.Lon,
		StartsAt:      input.StartsAt,
		Capacity:      input.Capacity,
		IsPrivate:     input.IsPrivate,
		ImageURL:      input.ImageURL,
	}
	if err := s.eventRepo.Create(event, categoryIDs); err != nil {
		return nil, storeError(err)
	}

	// 创建者的活动统计视图失效
	_ = redis.InvalidateViews(actingUserID, redis.ViewUserStats)

	return event, nil
}

// UpdateEventInput 编辑活动的输入（nil字段不变）
type UpdateEventInput struct {
	Title         *string
	Description   *string
	LocationLabel *string
	Lat           *float64
	Lon           *float64
	StartsAt      *time.Time
	Capacity      *int
	IsPrivate     *bool
	ImageURL      *string
}

// UpdateEvent 编辑活动，仅创建者可操作
func (s *EventService) UpdateEvent(eventID, actingUserID uint, input UpdateEventInput) error {
	if actingUserID == 0 {
		return ErrNotAuthenticated
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return storeError(err)
	}
	if event.CreatorID != actingUserID {
		return fmt.Errorf("%w: only the creator can edit this event", ErrForbidden)
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return fmt.Errorf("%w: title cannot be empty", ErrInvalid)
		}
		fields["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.LocationLabel != nil {
		fields["location_label"] = *input.LocationLabel
	}
	if input.Lat != nil {
		fields["lat"] = *input.Lat
	}
	if input.Lon != nil {
		fields["lon"] = *input.Lon
	}
	if input.StartsAt != nil {
		fields["starts_at"] = *input.StartsAt
	}
	if input.Capacity != nil {
		if *input.Capacity < 0 {
			return fmt.Errorf("%w: capacity cannot be negative", ErrInvalid)
		}
		fields["capacity"] = *input.Capacity
	}
	if input.IsPrivate != nil {
		fields["is_private"] = *input.IsPrivate
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.eventRepo.UpdateFields(eventID, fields); err != nil {
		return storeError(err)
	}
	return nil
}

// GetEvent 获取单个活动视图
// 私密活动仅创建者与受邀用户可见，其余为Forbidden
func (s *EventService) GetEvent(eventID, actingUserID uint) (*response.EventInfo, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, storeError(err)
	}

	if event.IsPrivate && event.CreatorID != actingUserID {
		invited, err := s.invitationRepo.Exists(eventID, actingUserID)
		if err != nil {
			return nil, storeError(err)
		}
		if !invited {
			return nil, fmt.Errorf("%w: private event", ErrForbidden)
		}
	}

	return s.projectEvent(event)
}

// ListEvents 获取对actor可见的活动列表
func (s *EventService) ListEvents(actingUserID uint) ([]*response.EventInfo, error) {
	events, err := s.eventRepo.ListVisible(actingUserID)
	if err != nil {
		return nil, storeError(err)
	}

	views := make([]*response.EventInfo, 0, len(events))
	for _, event := range events {
		view, err := s.projectEvent(event)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// projectEvent 组装活动视图（分类名称 + 已确认参加人数）
func (s *EventService) projectEvent(event *model.Event) (*response.EventInfo, error) {
	categories, err := s.eventRepo.ListCategoryNames(event.ID)
	if err != nil {
		return nil, storeError(err)
	}
	goingCount, err := s.attendanceRepo.CountGoing(event.ID)
	if err != nil {
		return nil, storeError(err)
	}
	return response.FilterEventInfo(event, categories, goingCount), nil
}
