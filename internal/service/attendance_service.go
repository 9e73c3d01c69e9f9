package service

import (
	"fmt"

	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/pkg/redis"
	"locallens-server/pkg/response"
)

// AttendanceService 活动报名与统计服务
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	eventRepo      *repository.EventRepository
	invitationRepo *repository.InvitationRepository
	userRepo       *repository.UserRepository
}

// NewAttendanceService 创建AttendanceService实例
func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	eventRepo *repository.EventRepository,
	invitationRepo *repository.InvitationRepository,
	userRepo *repository.UserRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
	}
}

// SetAttendance 写入报名状态
// 每对(event, user)只保留一行，重复提交覆盖（last-write-wins，不保留历史）
// 私密活动仅创建者与受邀用户可报名
func (s *AttendanceService) SetAttendance(eventID, userID uint, status string) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if !model.ValidAttendanceStatus(status) {
		return fmt.Errorf("%w: status must be going/maybe/declined", ErrInvalid)
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return storeError(err)
	}
	if event.IsPrivate && event.CreatorID != userID {
		invited, err := s.invitationRepo.Exists(eventID, userID)
		if err != nil {
			return storeError(err)
		}
		if !invited {
			return fmt.Errorf("%w: private event", ErrForbidden)
		}
	}

	if err := s.attendanceRepo.Upsert(&model.EventAttendance{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}); err != nil {
		return storeError(err)
	}

	// 统计视图失效
	_ = redis.InvalidateViews(userID, redis.ViewUserStats)

	return nil
}

// GetAttendingUsers 获取确认参加某活动的用户（公开信息投影）
func (s *AttendanceService) GetAttendingUsers(eventID uint) ([]*response.PublicUser, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, storeError(err)
	}

	ids, err := s.attendanceRepo.ListGoingUserIDs(eventID)
	if err != nil {
		return nil, storeError(err)
	}
	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, storeError(err)
	}

	attendees := make([]*response.PublicUser, 0, len(users))
	for _, u := range users {
		attendees = append(attendees, response.FilterPublicUser(u))
	}
	return attendees, nil
}

// GetUserEventStats 获取用户活动统计
// createdEvents为创建的活动数；attendedEvents为报名行数（不过滤状态）
// 两项均为非负整数，新用户为0/0
func (s *AttendanceService) GetUserEventStats(userID uint) (*response.UserEventStats, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	// 优先读视图缓存
	var cached response.UserEventStats
	if err := redis.GetView(redis.ViewUserStats, userID, &cached); err == nil {
		return &cached, nil
	}

	created, err := s.eventRepo.CountCreatedBy(userID)
	if err != nil {
		return nil, storeError(err)
	}
	attended, err := s.attendanceRepo.CountByUser(userID)
	if err != nil {
		return nil, storeError(err)
	}

	stats := &response.UserEventStats{
		CreatedEvents:  created,
		AttendedEvents: attended,
	}

	_ = redis.CacheView(redis.ViewUserStats, userID, stats)

	return stats, nil
}
