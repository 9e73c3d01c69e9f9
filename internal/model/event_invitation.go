package model

import "time"

// EventInvitation 活动邀请
// (event_id, invited_user_id) 唯一索引由数据库保证去重，
// 并发重复邀请时以唯一约束冲突作为Conflict信号（不做先查后写）
// Deleted 为软删除标记：通知列表中隐藏但保留记录

type EventInvitation struct {
	ID            uint      `gorm:"primaryKey"`
	EventID       uint      `gorm:"not null;uniqueIndex:uniq_event_invitee;comment:活动ID"`
	InvitedUserID uint      `gorm:"not null;uniqueIndex:uniq_event_invitee;index;comment:受邀用户ID"`
	InviterID     uint      `gorm:"not null;comment:邀请人ID"`
	Seen          bool      `gorm:"default:false;comment:是否已读"`
	Deleted       bool      `gorm:"default:false;comment:是否已隐藏"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

func (EventInvitation) TableName() string { return "event_invitation" }
