package model

import "time"

// 好友申请状态
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestRejected = "rejected"
)

// FriendRequest 好友申请
// Status: pending/accepted/rejected
// PairMinID/PairMaxID 为归一化的无序用户对（小ID在前）
// Active 仅在pending时为1，结案后置NULL；
// 配合 (pair_min_id, pair_max_id, active) 唯一索引，
// 数据库层面保证同一对用户最多只有一条待处理申请（两个方向合并计算）

type FriendRequest struct {
	ID         uint      `gorm:"primaryKey"`
	FromUserID uint      `gorm:"not null;index;comment:申请发起者ID"`
	ToUserID   uint      `gorm:"not null;index;comment:申请接收者ID"`
	Status     string    `gorm:"type:varchar(32);default:'pending';comment:申请状态"`
	PairMinID  uint      `gorm:"not null;uniqueIndex:uniq_active_pair;comment:用户对较小ID"`
	PairMaxID  uint      `gorm:"not null;uniqueIndex:uniq_active_pair;comment:用户对较大ID"`
	Active     *uint8    `gorm:"uniqueIndex:uniq_active_pair;comment:待处理标记(1或NULL)"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

func (FriendRequest) TableName() string { return "friend_request" }

// NormalizePair 计算无序用户对的归一化列
func NormalizePair(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}
