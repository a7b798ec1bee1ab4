package handler

import (
	"time"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// CreateInvestmentRequest 创建投资请求
type CreateInvestmentRequest struct {
	ProjectId     int64  `json:"projectId" binding:"required"`
	Amount        int64  `json:"amount" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
	Message       string `json:"message"`
}

// CreateInvestmentResponse 创建投资响应
type CreateInvestmentResponse struct {
	PaymentURL string `json:"paymentUrl"`
}

// InvestmentResponse 投资记录响应模型
type InvestmentResponse struct {
	ID              int64      `json:"id"`
	ProjectID       int64      `json:"projectId"`
	InvestorID      int64      `json:"investorId"`
	Amount          int64      `json:"amount"`
	Message         string     `json:"message"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"paymentMethod"`
	TransactionCode string     `json:"transactionCode"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

// ProjectResponse 项目响应模型
type ProjectResponse struct {
	ID            int64      `json:"id"`
	FounderID     int64      `json:"founderId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	ImageURL      string     `json:"imageUrl"`
	TargetAmount  int64      `json:"targetAmount"`
	CurrentAmount int64      `json:"currentAmount"`
	InvestorCount int        `json:"investorCount"`
	DaysLeft      int        `json:"daysLeft"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt"`
}

// TransactionResponse 资金流水响应模型
type TransactionResponse struct {
	ID              int64      `json:"id"`
	Type            string     `json:"type"`
	Amount          int64      `json:"amount"`
	Status          string     `json:"status"`
	TransactionCode string     `json:"transactionCode"`
	PaymentMethod   string     `json:"paymentMethod"`
	Description     string     `json:"description"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

// GetInvestmentsResponse 投资记录列表响应
type GetInvestmentsResponse struct {
	Investments []InvestmentResponse `json:"investments"`
}

// GetProjectsResponse 项目列表响应
type GetProjectsResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	Pagination Pagination        `json:"pagination"`
}

// GetTransactionsResponse 资金流水列表响应
type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

// ToInvestmentResponse 将投资记录数据库模型转换为响应模型
func ToInvestmentResponse(investment *model.InvestmentModel) InvestmentResponse {
	return InvestmentResponse{
		ID:              investment.Id,
		ProjectID:       investment.ProjectId,
		InvestorID:      investment.InvestorId,
		Amount:          investment.Amount,
		Message:         investment.Message,
		Status:          string(investment.Status),
		PaymentMethod:   string(investment.PaymentMethod),
		TransactionCode: investment.TransactionCode,
		CreatedAt:       investment.CreatedAt,
		CompletedAt:     investment.CompletedAt,
	}
}

// ToInvestmentResponseList 将投资记录模型列表转换为响应模型列表
func ToInvestmentResponseList(investments []model.InvestmentModel) []InvestmentResponse {
	result := make([]InvestmentResponse, len(investments))
	for i, investment := range investments {
		result[i] = ToInvestmentResponse(&investment)
	}
	return result
}

// ToProjectResponse 将项目数据库模型转换为响应模型
func ToProjectResponse(project *model.ProjectModel) ProjectResponse {
	return ProjectResponse{
		ID:            project.Id,
		FounderID:     project.FounderId,
		Title:         project.Title,
		Description:   project.Description,
		Category:      project.Category,
		ImageURL:      project.ImageURL,
		TargetAmount:  project.TargetAmount,
		CurrentAmount: project.CurrentAmount,
		InvestorCount: project.InvestorCount,
		DaysLeft:      project.DaysLeft,
		Status:        string(project.Status),
		CreatedAt:     project.CreatedAt,
		CompletedAt:   project.CompletedAt,
	}
}

// ToProjectResponseList 将项目模型列表转换为响应模型列表
func ToProjectResponseList(projects []model.ProjectModel) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		result[i] = ToProjectResponse(&project)
	}
	return result
}

// ToTransactionResponse 将资金流水数据库模型转换为响应模型
func ToTransactionResponse(transaction *model.TransactionModel) TransactionResponse {
	return TransactionResponse{
		ID:              transaction.Id,
		Type:            string(transaction.Type),
		Amount:          transaction.Amount,
		Status:          string(transaction.Status),
		TransactionCode: transaction.TransactionCode,
		PaymentMethod:   transaction.PaymentMethod,
		Description:     transaction.Description,
		CreatedAt:       transaction.CreatedAt,
		CompletedAt:     transaction.CompletedAt,
	}
}

// ToTransactionResponseList 将资金流水模型列表转换为响应模型列表
func ToTransactionResponseList(transactions []model.TransactionModel) []TransactionResponse {
	result := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		result[i] = ToTransactionResponse(&transaction)
	}
	return result
}
