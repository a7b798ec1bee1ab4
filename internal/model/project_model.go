package model

import (
	"time"
)

// ProjectModel 众筹项目模型
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title           string `json:"title" gorm:"size:500;not null" binding:"required"`
	Description     string `json:"description" gorm:"type:text;not null"`
	FullDescription string `json:"full_description" gorm:"type:text"`
	Category        string `json:"category" gorm:"index;not null"`
	ImageURL        string `json:"image_url" gorm:"size:512"`

	// 众筹信息（金额单位：VND，整数）
	TargetAmount  int64 `json:"target_amount" gorm:"not null" binding:"required,min=1000000"`
	CurrentAmount int64 `json:"current_amount" gorm:"default:0"`
	InvestorCount int   `json:"investor_count" gorm:"default:0"`
	DaysLeft      int   `json:"days_left" gorm:"not null" binding:"required,min=30"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"type:varchar(50);index;default:'pending'"`

	// 创建者信息
	FounderId int64 `json:"founder_id" gorm:"index;not null"`

	// 生命周期时间
	SubmittedAt *time.Time `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at"`
	RejectedAt  *time.Time `json:"rejected_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"   // 待审核
	ProjectStatusApproved  ProjectStatus = "approved"  // 审核通过
	ProjectStatusRejected  ProjectStatus = "rejected"  // 审核拒绝
	ProjectStatusActive    ProjectStatus = "active"    // 募资中
	ProjectStatusCompleted ProjectStatus = "completed" // 募资成功
	ProjectStatusCancelled ProjectStatus = "cancelled" // 募资失败
)

// IsTerminal 是否为终态
func (s ProjectStatus) IsTerminal() bool {
	return s == ProjectStatusRejected || s == ProjectStatusCompleted || s == ProjectStatusCancelled
}

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "projects"
}
