package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
// 索引与唯一约束：用户名唯一、邮箱唯一
// 说明：密码仅存储哈希（PasswordHash），不存储明文
// Online/LastActiveAt 由WebSocket在线状态维护
// Lat/Lon 可为空（用户未开启位置共享时为NULL）

type User struct {
	ID            uint           `gorm:"primaryKey"`
	Name          string         `gorm:"type:varchar(64);comment:显示名称"`
	Username      string         `gorm:"type:varchar(64);not null;uniqueIndex;comment:用户名"`
	Email         string         `gorm:"type:varchar(128);uniqueIndex;comment:邮箱"`
	PasswordHash  string         `gorm:"type:varchar(255);not null;comment:密码哈希"`
	Avatar        string         `gorm:"type:varchar(255);comment:头像URL"`
	LocationLabel string         `gorm:"type:varchar(128);comment:位置描述"`
	Online        bool           `gorm:"default:false;comment:是否在线"`
	LastActiveAt  time.Time      `gorm:"comment:最近活跃时间"`
	ShareLocation bool           `gorm:"default:false;comment:是否共享位置"`
	Lat           *float64       `gorm:"comment:纬度"`
	Lon           *float64       `gorm:"comment:经度"`
	CreatedAt     time.Time      `gorm:"comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName 指定表名（因全局配置使用单数表名，这里与结构体名一致为 user）
func (User) TableName() string { return "user" }
