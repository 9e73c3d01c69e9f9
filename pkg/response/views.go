package response

import (
	"strings"
	"time"

	"locallens-server/internal/model"
)

// 本文件为纯投影函数：把存储行转换为对外视图，不产生副作用
// 空值兜底是契约的一部分：
//   名称缺失 -> "Unknown"
//   头像缺失 -> ""
//   邮箱缺失且无用户名 -> 用户名 "unknown"

// PublicUser 好友/用户公开信息（不暴露内部标记与敏感字段）
type PublicUser struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Username      string   `json:"username"`
	ImageURL      string   `json:"image_url"`
	LocationLabel string   `json:"location_label,omitempty"`
	Online        bool     `json:"online"`
	Lat           *float64 `json:"lat,omitempty"`
	Lon           *float64 `json:"lon,omitempty"`
}

// FilterPublicUser 过滤用户信息为公开视图
func FilterPublicUser(user *model.User) *PublicUser {
	if user == nil {
		return nil
	}

	name := user.Name
	if name == "" {
		name = "Unknown"
	}

	username := user.Username
	if username == "" {
		// 用户名缺失时从邮箱前缀推导
		if at := strings.Index(user.Email, "@"); at > 0 {
			username = user.Email[:at]
		} else {
			username = "unknown"
		}
	}

	view := &PublicUser{
		ID:       user.ID,
		Name:     name,
		Username: username,
		ImageURL: user.Avatar,
		Online:   user.Online,
	}

	// 仅在用户开启位置共享时暴露位置
	if user.ShareLocation {
		view.LocationLabel = user.LocationLabel
		view.Lat = user.Lat
		view.Lon = user.Lon
	}

	return view
}

// 好友申请方向
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// FriendRequestInfo 好友申请视图（带方向与对方公开信息）
type FriendRequestInfo struct {
	ID        uint        `json:"id"`
	Direction string      `json:"direction"` // incoming/outgoing
	Status    string      `json:"status"`
	Other     *PublicUser `json:"other"` // 对方用户
	CreatedAt string      `json:"created_at"`
}

// FilterFriendRequestInfo 生成好友申请视图
// viewerID 决定方向：viewer是接收者则为incoming，否则为outgoing
func FilterFriendRequestInfo(req *model.FriendRequest, viewerID uint, other *model.User) *FriendRequestInfo {
	if req == nil {
		return nil
	}

	direction := DirectionOutgoing
	if req.ToUserID == viewerID {
		direction = DirectionIncoming
	}

	return &FriendRequestInfo{
		ID:        req.ID,
		Direction: direction,
		Status:    req.Status,
		Other:     FilterPublicUser(other),
		CreatedAt: req.CreatedAt.Format(time.RFC3339),
	}
}

// NotificationInfo 邀请通知视图
type NotificationInfo struct {
	ID            uint   `json:"id"`
	EventID       uint   `json:"event_id"`
	EventTitle    string `json:"event_title"`
	EventDate     string `json:"event_date"`
	LocationLabel string `json:"location_label"`
	Description   string `json:"description"`
	AttendeeCount int64  `json:"attendee_count"` // 已确认参加人数
	Seen          bool   `json:"seen"`
	CreatedAt     string `json:"created_at"`
}

// FilterNotificationInfo 生成邀请通知视图
func FilterNotificationInfo(inv *model.EventInvitation, event *model.Event, goingCount int64) *NotificationInfo {
	if inv == nil {
		return nil
	}

	view := &NotificationInfo{
		ID:            inv.ID,
		EventID:       inv.EventID,
		Seen:          inv.Seen,
		AttendeeCount: goingCount,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}

	// 活动可能已被删除，通知仍需展示兜底内容
	if event != nil {
		view.EventTitle = event.Title
		view.EventDate = event.StartsAt.Format(time.RFC3339)
		view.LocationLabel = event.LocationLabel
		view.Description = event.Description
	} else {
		view.EventTitle = "Unknown"
	}

	return view
}

// EventInfo 活动视图
type EventInfo struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	CreatorID     uint     `json:"creator_id"`
	LocationLabel string   `json:"location_label"`
	Lat           *float64 `json:"lat,omitempty"`
	Lon           *float64 `json:"lon,omitempty"`
	StartsAt      string   `json:"starts_at"`
	Capacity      int      `json:"capacity"`
	IsPrivate     bool     `json:"is_private"`
	ImageURL      string   `json:"image_url"`
	Categories    []string `json:"categories,omitempty"`
	GoingCount    int64    `json:"going_count"`
}

// FilterEventInfo 生成活动视图
func FilterEventInfo(event *model.Event, categories []string, goingCount int64) *EventInfo {
	if event == nil {
		return nil
	}

	return &EventInfo{
		ID:            event.ID,
		Title:         event.Title,
		Description:   event.Description,
		CreatorID:     event.CreatorID,
		LocationLabel: event.LocationLabel,
		Lat:           event.Lat,
		Lon:           event.Lon,
		StartsAt:      event.StartsAt.Format(time.RFC3339),
		Capacity:      event.Capacity,
		IsPrivate:     event.IsPrivate,
		ImageURL:      event.ImageURL,
		Categories:    categories,
		GoingCount:    goingCount,
	}
}

// UserEventStats 用户活动统计
type UserEventStats struct {
	CreatedEvents  int64 `json:"created_events"`
	AttendedEvents int64 `json:"attended_events"`
}

// ReviewInfo 地点评价视图（带作者公开信息）
type ReviewInfo struct {
	ID        uint        `json:"id"`
	PlaceID   uint        `json:"place_id"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	Author    *PublicUser `json:"author"`
	CreatedAt string      `json:"created_at"`
}

// FilterReviewInfo 生成评价视图
func FilterReviewInfo(review *model.Review, author *model.User) *ReviewInfo {
	if review == nil {
		return nil
	}

	return &ReviewInfo{
		ID:        review.ID,
		PlaceID:   review.PlaceID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Author:    FilterPublicUser(author),
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	}
}
