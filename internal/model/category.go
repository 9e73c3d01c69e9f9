package model

import "time"

// Category 活动分类
// 名称唯一

type Category struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(64);not null;uniqueIndex;comment:分类名称"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (Category) TableName() string { return "category" }

// EventCategory 活动与分类的多对多关联
// (event_id, category_id) 唯一

type EventCategory struct {
	ID         uint `gorm:"primaryKey"`
	EventID    uint `gorm:"not null;uniqueIndex:uniq_event_category;comment:活动ID"`
	CategoryID uint `gorm:"not null;uniqueIndex:uniq_event_category;index;comment:分类ID"`
}

func (EventCategory) TableName() string { return "event_category" }
