package model

import "time"

// Place 地点

type Place struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(128);not null;comment:地点名称"`
	Address   string    `gorm:"type:varchar(255);comment:地址"`
	Lat       *float64  `gorm:"comment:纬度"`
	Lon       *float64  `gorm:"comment:经度"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (Place) TableName() string { return "place" }

// Review 地点评价
// Rating 限定1-5，由服务层校验

type Review struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index;comment:评价者ID"`
	PlaceID   uint      `gorm:"not null;index;comment:地点ID"`
	Rating    int       `gorm:"not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评价内容"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (Review) TableName() string { return "review" }
