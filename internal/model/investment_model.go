package model

import (
	"time"
)

// MinInvestmentAmount 单笔投资最低金额（VND）
const MinInvestmentAmount int64 = 100000

// InvestmentModel 投资记录
type InvestmentModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvestorId int64 `json:"investor_id" gorm:"index;not null"`
	ProjectId  int64 `json:"project_id" gorm:"index;not null"`

	// 金额单位：VND，整数
	Amount  int64  `json:"amount" gorm:"not null"`
	Message string `json:"message" gorm:"type:text"`

	Status        InvestmentStatus `json:"status" gorm:"type:varchar(20);index;default:'pending'"`
	PaymentMethod PaymentMethod    `json:"payment_method" gorm:"type:varchar(20);not null;default:'vnpay'"`

	// 交易码：全局唯一，创建后不可变，作为结算幂等键与网关支付引用
	TransactionCode string `json:"transaction_code" gorm:"uniqueIndex;size:64"`

	CompletedAt *time.Time `json:"completed_at"`
}

// InvestmentStatus 投资状态
type InvestmentStatus string

const (
	InvestmentStatusPending  InvestmentStatus = "pending"  // 待支付
	InvestmentStatusSuccess  InvestmentStatus = "success"  // 支付成功
	InvestmentStatusFailed   InvestmentStatus = "failed"   // 支付失败
	InvestmentStatusRefunded InvestmentStatus = "refunded" // 已退款
)

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentMethodVnpay        PaymentMethod = "vnpay"
	PaymentMethodMomo         PaymentMethod = "momo"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// TableName 自定义表名
func (InvestmentModel) TableName() string {
	return "investments"
}
