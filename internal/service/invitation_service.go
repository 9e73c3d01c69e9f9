package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/pkg/redis"
	"locallens-server/pkg/response"
	"locallens-server/pkg/websocket"

	"gorm.io/gorm"
)

// InvitePolicy 活动邀请授权策略
// 返回true表示actor有权为该活动发出邀请
type InvitePolicy func(event *model.Event, actorID uint) bool

// CreatorOnlyPolicy 仅活动创建者可邀请（默认策略）
func CreatorOnlyPolicy(event *model.Event, actorID uint) bool {
	return event.CreatorID == actorID
}

// OpenInvitePolicy 任何已认证用户均可邀请
func OpenInvitePolicy(event *model.Event, actorID uint) bool {
	return true
}

// InvitationService 活动邀请服务
// 邀请去重由数据库唯一索引保证；seen/deleted为软状态，记录不物理删除
type InvitationService struct {
	invitationRepo *repository.InvitationRepository
	eventRepo      *repository.EventRepository
	attendanceRepo *repository.AttendanceRepository
	userRepo       *repository.UserRepository
	policy         InvitePolicy
}

// NewInvitationService 创建InvitationService实例
func NewInvitationService(
	invitationRepo *repository.InvitationRepository,
	eventRepo *repository.EventRepository,
	attendanceRepo *repository.AttendanceRepository,
	userRepo *repository.UserRepository,
	policy InvitePolicy,
) *InvitationService {
	if policy == nil {
		policy = CreatorOnlyPolicy
	}
	return &InvitationService{
		invitationRepo: invitationRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		policy:         policy,
	}
}

// InviteUser 邀请单个用户参加活动
// 授权由注入的策略决定；重复邀请为Conflict，表中不产生新行
func (s *InvitationService) InviteUser(eventID, invitedUserID, actingUserID uint) (*model.EventInvitation, error) {
	if actingUserID == 0 {
		return nil, ErrNotAuthenticated
	}
	if invitedUserID == actingUserID {
		return nil, fmt.Errorf("%w: cannot invite yourself", ErrInvalid)
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, storeError(err)
	}
	if !s.policy(event, actingUserID) {
		return nil, fmt.Errorf("%w: not allowed to invite for this event", ErrForbidden)
	}

	// 检查受邀用户存在
	if _, err := s.userRepo.GetByID(invitedUserID); err != nil {
		return nil, storeError(err)
	}

	invitation := &model.EventInvitation{
		EventID:       eventID,
		InvitedUserID: invitedUserID,
		InviterID:     actingUserID,
	}
	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, storeError(err)
	}

	s.afterInvite(event, []uint{invitedUserID})

	return invitation, nil
}

// InviteGroup 按成员集合批量邀请
// 排除actor自身；逐个尽力而为，已被邀请的成员跳过不影响其余；
// 返回实际新建的邀请数
func (s *InvitationService) InviteGroup(eventID uint, memberIDs []uint, actingUserID uint) (int, error) {
	if actingUserID == 0 {
		return 0, ErrNotAuthenticated
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return 0, storeError(err)
	}
	if !s.policy(event, actingUserID) {
		return 0, fmt.Errorf("%w: not allowed to invite for this event", ErrForbidden)
	}

	created := 0
	invited := make([]uint, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		if memberID == actingUserID {
			continue
		}
		err := s.invitationRepo.Create(&model.EventInvitation{
			EventID:       eventID,
			InvitedUserID: memberID,
			InviterID:     actingUserID,
		})
		if err != nil {
			// 已被邀请的成员跳过，不中断批次
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return created, storeError(err)
		}
		created++
		invited = append(invited, memberID)
	}

	s.afterInvite(event, invited)

	return created, nil
}

// afterInvite 邀请成功后的缓存失效、未读计数与应用内提醒
func (s *InvitationService) afterInvite(event *model.Event, invitedIDs []uint) {
	if len(invitedIDs) == 0 {
		return
	}

	_ = redis.InvalidateViewForUsers(redis.ViewNotifications, invitedIDs)
	_ = redis.BatchIncrementUnseenCount(invitedIDs)

	// 在线用户收到应用内提醒，不在线则丢弃（下次拉取通知列表时可见）
	payload, err := json.Marshal(map[string]interface{}{
		"type":        "invitation",
		"event_id":    event.ID,
		"event_title": event.Title,
	})
	if err != nil {
		return
	}
	for _, id := range invitedIDs {
		websocket.GetManager().SendToUser(id, payload)
	}
}

// MarkAllSeen 将用户的全部邀请置为已读
// 幂等：重复调用结果一致且不报错
func (s *InvitationService) MarkAllSeen(userID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}

	if err := s.invitationRepo.MarkAllSeen(userID); err != nil {
		return storeError(err)
	}

	_ = redis.ResetUnseenCount(userID)
	_ = redis.InvalidateViews(userID, redis.ViewNotifications)

	return nil
}

// MarkDeleted 隐藏某活动对actor的邀请（软删除，记录保留）
func (s *InvitationService) MarkDeleted(eventID, actingUserID uint) error {
	if actingUserID == 0 {
		return ErrNotAuthenticated
	}

	affected, err := s.invitationRepo.MarkDeleted(eventID, actingUserID)
	if err != nil {
		return storeError(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: invitation not found", ErrNotFound)
	}

	_ = redis.InvalidateViews(actingUserID, redis.ViewNotifications)

	return nil
}

// ListNotifications 获取用户的邀请通知列表
// 仅未隐藏的邀请，最新在前，带活动信息与已确认参加人数
func (s *InvitationService) ListNotifications(userID uint) ([]*response.NotificationInfo, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	// 优先读视图缓存
	var cached []*response.NotificationInfo
	if err := redis.GetView(redis.ViewNotifications, userID, &cached); err == nil {
		return cached, nil
	}

	invitations, err := s.invitationRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, storeError(err)
	}

	notifications := make([]*response.NotificationInfo, 0, len(invitations))
	for _, inv := range invitations {
		// 活动可能已被删除，通知仍保留并以兜底内容展示
		event, err := s.eventRepo.GetByID(inv.EventID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeError(err)
		}

		var goingCount int64
		if event != nil {
			goingCount, err = s.attendanceRepo.CountGoing(inv.EventID)
			if err != nil {
				return nil, storeError(err)
			}
		}

		notifications = append(notifications, response.FilterNotificationInfo(inv, event, goingCount))
	}

	// 异步重建缓存
	go func() {
		_ = redis.CacheView(redis.ViewNotifications, userID, notifications)
	}()

	return notifications, nil
}

// GetUnseenCount 获取未读邀请数（优先Redis，未命中回源数据库并同步）
func (s *InvitationService) GetUnseenCount(userID uint) (int64, error) {
	if userID == 0 {
		return 0, ErrNotAuthenticated
	}

	count, err := redis.GetUnseenCount(userID)
	if err == nil && count >= 0 {
		return count, nil
	}

	dbCount, err := s.invitationRepo.CountUnseenByUser(userID)
	if err != nil {
		return 0, storeError(err)
	}

	_ = redis.SetUnseenCount(userID, dbCount)

	return dbCount, nil
}
