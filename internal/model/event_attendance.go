package model

import "time"

// 活动报名状态
const (
	AttendanceGoing    = "going"
	AttendanceMaybe    = "maybe"
	AttendanceDeclined = "declined"
)

// EventAttendance 活动报名（RSVP）
// (event_id, user_id) 唯一，重复提交时覆盖更新（不保留历史）

type EventAttendance struct {
	ID        uint      `gorm:"primaryKey"`
	EventID   uint      `gorm:"not null;uniqueIndex:uniq_event_attendee;comment:活动ID"`
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_event_attendee;index;comment:用户ID"`
	Status    string    `gorm:"type:varchar(32);not null;comment:报名状态"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (EventAttendance) TableName() string { return "event_attendance" }

// ValidAttendanceStatus 校验报名状态取值
func ValidAttendanceStatus(status string) bool {
	switch status {
	case AttendanceGoing, AttendanceMaybe, AttendanceDeclined:
		return true
	}
	return false
}
