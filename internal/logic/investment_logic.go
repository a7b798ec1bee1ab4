package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/audit"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/vnpay"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvestmentLogic 投资业务逻辑
type InvestmentLogic struct {
	db       *gorm.DB
	gateway  *vnpay.Client
	recorder *audit.Recorder
}

// NewInvestmentLogic 创建投资业务逻辑
func NewInvestmentLogic(db *gorm.DB, gateway *vnpay.Client, recorder *audit.Recorder) *InvestmentLogic {
	return &InvestmentLogic{db: db, gateway: gateway, recorder: recorder}
}

// CreateInvestmentInput 创建投资的入参
type CreateInvestmentInput struct {
	InvestorId    int64
	ProjectId     int64
	Amount        int64
	PaymentMethod model.PaymentMethod
	Message       string
	ClientIp      string
}

// CreateInvestment 创建投资并返回网关支付链接
//
// 校验通过后在一个事务里落两条PENDING记录（投资+流水），共用新生成的
// 交易码，再基于交易码构造签名后的支付链接给调用方跳转。
func (l *InvestmentLogic) CreateInvestment(in CreateInvestmentInput) (string, error) {
	// 检查项目是否存在且可投资
	var project model.ProjectModel
	if err := l.db.First(&project, in.ProjectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProjectNotFound
		}
		return "", fmt.Errorf("查询项目失败: %w", err)
	}

	if project.Status != model.ProjectStatusActive {
		return "", ErrProjectNotOpen
	}

	// 不允许投资自己创建的项目
	if project.FounderId == in.InvestorId {
		return "", ErrSelfInvestment
	}

	if in.Amount < model.MinInvestmentAmount {
		return "", ErrAmountTooLow
	}

	method := in.PaymentMethod
	if method == "" {
		method = model.PaymentMethodVnpay
	}

	// 生成全局唯一交易码：时间戳保证可读排序，uuid后缀保证并发不冲突
	txnCode := newTransactionCode()
	now := time.Now()

	investment := model.InvestmentModel{
		InvestorId:      in.InvestorId,
		ProjectId:       in.ProjectId,
		Amount:          in.Amount,
		Message:         in.Message,
		Status:          model.InvestmentStatusPending,
		PaymentMethod:   method,
		TransactionCode: txnCode,
	}

	// 投资记录与资金流水在同一事务中落库
	tx := l.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&investment).Error; err != nil {
		tx.Rollback()
		return "", fmt.Errorf("创建投资记录失败: %w", err)
	}

	transaction := model.TransactionModel{
		UserId:          in.InvestorId,
		InvestmentId:    &investment.Id,
		Type:            model.TransactionTypeInvestment,
		Amount:          in.Amount,
		Status:          model.TransactionStatusPending,
		TransactionCode: txnCode,
		PaymentMethod:   string(method),
		Description:     "Dau tu du an: " + vnpay.SanitizeOrderInfo(project.Title),
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		return "", fmt.Errorf("创建资金流水失败: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return "", fmt.Errorf("提交投资事务失败: %w", err)
	}

	l.record(audit.Entry{
		UserId:     in.InvestorId,
		Action:     "CREATE_INVESTMENT",
		EntityType: "INVESTMENT",
		EntityId:   investment.Id,
		IpAddress:  in.ClientIp,
		Metadata: map[string]interface{}{
			"project_id":       in.ProjectId,
			"amount":           in.Amount,
			"transaction_code": txnCode,
		},
	})

	paymentURL, err := l.gateway.BuildPaymentURL(vnpay.PaymentRequest{
		TxnRef:    txnCode,
		Amount:    in.Amount,
		OrderInfo: "Thanh toan dau tu " + txnCode,
		IpAddr:    in.ClientIp,
		CreateAt:  now,
	})
	if err != nil {
		return "", fmt.Errorf("生成支付链接失败: %w", err)
	}

	return paymentURL, nil
}

// GetMyInvestments 获取用户自己的投资记录
func (l *InvestmentLogic) GetMyInvestments(investorId int64) ([]model.InvestmentModel, error) {
	var investments []model.InvestmentModel
	if err := l.db.Where("investor_id = ?", investorId).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("获取投资记录失败: %w", err)
	}
	return investments, nil
}

// GetProjectInvestments 获取项目的投资记录，仅项目创建者可见
func (l *InvestmentLogic) GetProjectInvestments(projectId, requesterId int64) ([]model.InvestmentModel, error) {
	var project model.ProjectModel
	if err := l.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}

	if project.FounderId != requesterId {
		return nil, ErrNotProjectFounder
	}

	var investments []model.InvestmentModel
	if err := l.db.Where("project_id = ?", projectId).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("获取项目投资记录失败: %w", err)
	}
	return investments, nil
}

// record 投递审计记录，记录器未配置时跳过
func (l *InvestmentLogic) record(e audit.Entry) {
	if l.recorder != nil {
		l.recorder.Record(e)
	}
}

// newTransactionCode 生成全局唯一交易码
func newTransactionCode() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("INV%d%s", time.Now().UnixMilli(), suffix)
}
