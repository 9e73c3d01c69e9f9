package model

import "time"

// FriendGroup 好友分组
// 成员关系必须显式写入 FriendGroupMember，群主不会隐式成为成员

type FriendGroup struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(64);not null;comment:分组名称"`
	OwnerID   uint      `gorm:"not null;index;comment:群主ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (FriendGroup) TableName() string { return "friend_group" }

// FriendGroupMember 分组成员
// (group_id, user_id) 唯一

type FriendGroupMember struct {
	ID        uint      `gorm:"primaryKey"`
	GroupID   uint      `gorm:"not null;uniqueIndex:uniq_group_member;comment:分组ID"`
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_group_member;index;comment:成员ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (FriendGroupMember) TableName() string { return "friend_group_member" }
