package model

import (
	"time"

	"gorm.io/gorm"
)

// Event 活动模型
// IsPrivate 为 true 时仅创建者与受邀用户可见
// Capacity 为0表示不限人数

type Event struct {
	ID            uint           `gorm:"primaryKey"`
	Title         string         `gorm:"type:varchar(128);not null;comment:活动标题"`
	Description   string         `gorm:"type:text;comment:活动描述"`
	CreatorID     uint           `gorm:"not null;index;comment:创建者ID"`
	LocationLabel string         `gorm:"type:varchar(128);comment:地点描述"`
	Lat           *float64       `gorm:"comment:纬度"`
	Lon           *float64       `gorm:"comment:经度"`
	StartsAt      time.Time      `gorm:"index;comment:开始时间"`
	Capacity      int            `gorm:"default:0;comment:人数上限(0为不限)"`
	IsPrivate     bool           `gorm:"default:false;comment:是否私密"`
	ImageURL      string         `gorm:"type:varchar(255);comment:封面图URL"`
	CreatedAt     time.Time      `gorm:"comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Event) TableName() string { return "event" }
