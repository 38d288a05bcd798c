package models

import "time"

type Webhook struct {
	ID        int64  `gorm:"primaryKey"`
	URL       string `gorm:"column:url;size:2048;not null"`
	EventType string `gorm:"size:64;not null;index"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
}

func (Webhook) TableName() string {
	return "webhooks"
}
