package model

import "time"

// Friendship 好友关系
// 对称关系：接受申请时同一事务内写入 (A,B) 与 (B,A) 两行
// (user_id, friend_id) 唯一，防止重复建立关系

type Friendship struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_friend_pair;comment:用户ID"`
	FriendID  uint      `gorm:"not null;uniqueIndex:uniq_friend_pair;comment:好友ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (Friendship) TableName() string { return "friendship" }
