package logic

import (
	"fmt"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"gorm.io/gorm"
)

// TransactionLogic 资金流水查询逻辑
type TransactionLogic struct {
	db *gorm.DB
}

// NewTransactionLogic 创建资金流水查询逻辑
func NewTransactionLogic(db *gorm.DB) *TransactionLogic {
	return &TransactionLogic{db: db}
}

// GetUserTransactions 获取用户的资金流水，可按类型过滤
func (t *TransactionLogic) GetUserTransactions(userId int64, txType string, page, pageSize int) ([]model.TransactionModel, int64, error) {
	query := t.db.Model(&model.TransactionModel{}).Where("user_id = ?", userId)
	if txType != "" {
		query = query.Where("type = ?", txType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取流水总数失败: %w", err)
	}

	var transactions []model.TransactionModel
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("获取资金流水失败: %w", err)
	}

	return transactions, total, nil
}
