package model

import (
	"time"
)

// ActivityLogModel 操作审计日志
type ActivityLogModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserId     int64  `json:"user_id" gorm:"index"`
	Action     string `json:"action" gorm:"index;not null"`
	EntityType string `json:"entity_type" gorm:"size:100"`
	EntityId   int64  `json:"entity_id"`
	IpAddress  string `json:"ip_address" gorm:"size:45"`
	Metadata   string `json:"metadata" gorm:"type:json"`
}

// TableName 自定义表名
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
