package model

import (
	"time"
)

// UserModel 用户模型（身份信息由外部认证服务维护，这里只保留结算所需字段）
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name  string `json:"name" gorm:"size:255"`
	Role  string `json:"role" gorm:"size:50;default:'investor'"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "users"
}
