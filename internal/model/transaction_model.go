package model

import (
	"time"
)

// TransactionModel 资金流水记录，与投资记录共用交易码；也承载提现、退款、手续费等非投资流水
type TransactionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId       int64  `json:"user_id" gorm:"index;not null"`
	InvestmentId *int64 `json:"investment_id" gorm:"index"`

	Type   TransactionType   `json:"type" gorm:"type:varchar(20);index;not null"`
	Amount int64             `json:"amount" gorm:"not null"`
	Status TransactionStatus `json:"status" gorm:"type:varchar(20);index;default:'pending'"`

	// 对于投资类流水，交易码必须与对应投资记录一致
	TransactionCode string `json:"transaction_code" gorm:"uniqueIndex;size:64"`

	PaymentMethod string `json:"payment_method" gorm:"size:50"`
	Description   string `json:"description" gorm:"type:text"`

	CompletedAt *time.Time `json:"completed_at"`
}

// TransactionType 流水类型
type TransactionType string

const (
	TransactionTypeInvestment TransactionType = "investment" // 投资
	TransactionTypeWithdrawal TransactionType = "withdrawal" // 提现
	TransactionTypeRefund     TransactionType = "refund"     // 退款
	TransactionTypeFee        TransactionType = "fee"        // 手续费
)

// TransactionStatus 流水状态
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending" // 处理中
	TransactionStatusSuccess TransactionStatus = "success" // 成功
	TransactionStatusFailed  TransactionStatus = "failed"  // 失败
)

// TableName 自定义表名
func (TransactionModel) TableName() string {
	return "transactions"
}
