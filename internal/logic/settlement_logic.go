package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/audit"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/vnpay"
	"gorm.io/gorm"
)

// SettlementLogic 支付回调结算逻辑
type SettlementLogic struct {
	db       *gorm.DB
	gateway  *vnpay.Client
	recorder *audit.Recorder
}

// NewSettlementLogic 创建结算逻辑
func NewSettlementLogic(db *gorm.DB, gateway *vnpay.Client, recorder *audit.Recorder) *SettlementLogic {
	return &SettlementLogic{db: db, gateway: gateway, recorder: recorder}
}

// SettlementResult 一次回调处理的结果
type SettlementResult struct {
	TxnRef       string `json:"txn_ref"`
	ResponseCode string `json:"response_code"`
	Settled      bool   `json:"settled"`   // 本次或此前已成功入账
	Duplicate    bool   `json:"duplicate"` // 重复投递，未发生新的账务变更
	InvestorId   int64  `json:"investor_id"`
	ProjectId    int64  `json:"project_id"`
	Amount       int64  `json:"amount"`
}

// HandleCallback 处理网关回调并做幂等结算
//
// 先验签，再按交易码查投资记录。成功响应码下的状态迁移必须是
// pending -> success 的条件更新：同一交易码并发投递时只有一次
// 更新生效，项目计数器只累加一次。重复投递返回成功且不动账。
func (l *SettlementLogic) HandleCallback(params map[string]string) (*SettlementResult, error) {
	// 验签不通过时不信任回调内容
	if err := l.gateway.VerifyCallback(params); err != nil {
		return nil, err
	}

	txnRef := params["vnp_TxnRef"]
	responseCode := params["vnp_ResponseCode"]

	var investment model.InvestmentModel
	if err := l.db.Where("transaction_code = ?", txnRef).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestmentNotFound
		}
		return nil, fmt.Errorf("查询投资记录失败: %w", err)
	}

	result := &SettlementResult{
		TxnRef:       txnRef,
		ResponseCode: responseCode,
		InvestorId:   investment.InvestorId,
		ProjectId:    investment.ProjectId,
		Amount:       investment.Amount,
	}

	// 已成功的记录直接按重复投递处理，防止二次入账
	if investment.Status == model.InvestmentStatusSuccess {
		result.Settled = true
		result.Duplicate = true
		return result, nil
	}

	if responseCode != vnpay.ResponseCodeSuccess {
		// 失败或取消：不动账，记录保持pending，仅审计
		l.record(audit.Entry{
			UserId:     investment.InvestorId,
			Action:     "INVESTMENT_PAYMENT_FAILED",
			EntityType: "INVESTMENT",
			EntityId:   investment.Id,
			Metadata: map[string]interface{}{
				"transaction_code": txnRef,
				"response_code":    responseCode,
				"gateway_message":  vnpay.ResponseCodeMessage(responseCode),
			},
		})
		return result, nil
	}

	duplicate, err := l.settle(&investment)
	if err != nil {
		return nil, err
	}

	result.Settled = true
	result.Duplicate = duplicate

	if !duplicate {
		l.record(audit.Entry{
			UserId:     investment.InvestorId,
			Action:     "INVESTMENT_SUCCESS",
			EntityType: "INVESTMENT",
			EntityId:   investment.Id,
			Metadata: map[string]interface{}{
				"transaction_code": txnRef,
				"project_id":       investment.ProjectId,
				"amount":           investment.Amount,
			},
		})
	}
	return result, nil
}

// settle 在一个事务里完成状态迁移与项目计数器累加
// 返回duplicate=true表示该交易码已被并发投递的另一次回调结算
func (l *SettlementLogic) settle(investment *model.InvestmentModel) (bool, error) {
	now := time.Now()

	tx := l.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 条件更新：只有仍处于pending的记录才会被本次回调迁移
	res := tx.Model(&model.InvestmentModel{}).
		Where("id = ? AND status = ?", investment.Id, model.InvestmentStatusPending).
		Updates(map[string]interface{}{
			"status":       model.InvestmentStatusSuccess,
			"completed_at": now,
		})
	if res.Error != nil {
		tx.Rollback()
		return false, fmt.Errorf("更新投资状态失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// 另一次投递已经完成迁移，本次不做任何账务变更
		tx.Rollback()
		return true, nil
	}

	// 同一事务内同步迁移对应资金流水
	if err := tx.Model(&model.TransactionModel{}).
		Where("transaction_code = ?", investment.TransactionCode).
		Updates(map[string]interface{}{
			"status":       model.TransactionStatusSuccess,
			"completed_at": now,
		}).Error; err != nil {
		tx.Rollback()
		return false, fmt.Errorf("更新资金流水失败: %w", err)
	}

	// 项目计数器在数据库侧原子累加，避免并发结算丢更新
	if err := tx.Model(&model.ProjectModel{}).
		Where("id = ?", investment.ProjectId).
		Updates(map[string]interface{}{
			"current_amount": gorm.Expr("current_amount + ?", investment.Amount),
			"investor_count": gorm.Expr("investor_count + 1"),
		}).Error; err != nil {
		tx.Rollback()
		return false, fmt.Errorf("更新项目募资进度失败: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return false, fmt.Errorf("提交结算事务失败: %w", err)
	}
	return false, nil
}

// record 投递审计记录，记录器未配置时跳过
func (l *SettlementLogic) record(e audit.Entry) {
	if l.recorder != nil {
		l.recorder.Record(e)
	}
}
