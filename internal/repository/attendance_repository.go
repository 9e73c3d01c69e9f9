package repository

import (
	"locallens-server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository 活动报名仓储
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository 创建AttendanceRepository实例
func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert 写入报名状态
// (event_id, user_id) 每对只保留一行，重复提交覆盖status（不保留历史）
func (r *AttendanceRepository) Upsert(att *model.EventAttendance) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(att).Error
}

// ListGoingUserIDs 获取确认参加某活动的用户ID
func (r *AttendanceRepository) ListGoingUserIDs(eventID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.EventAttendance{}).
		Where("event_id = ? AND status = ?", eventID, model.AttendanceGoing).
		Pluck("user_id", &ids).Error
	return ids, err
}

// CountGoing 统计某活动确认参加人数
func (r *AttendanceRepository) CountGoing(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.EventAttendance{}).
		Where("event_id = ? AND status = ?", eventID, model.AttendanceGoing).
		Count(&count).Error
	return count, err
}

// CountByUser 统计用户的报名行数
// 不过滤状态（maybe/declined也计入），与统计口径保持一致
func (r *AttendanceRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.EventAttendance{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
