package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/logic"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/middleware"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/vnpay"
	"github.com/gin-gonic/gin"
)

// InvestmentHandler 投资处理器
type InvestmentHandler struct {
	investmentLogic *logic.InvestmentLogic
	settlementLogic *logic.SettlementLogic
	frontendURL     string
}

// NewInvestmentHandler 创建投资处理器
func NewInvestmentHandler(investmentLogic *logic.InvestmentLogic, settlementLogic *logic.SettlementLogic, frontendURL string) *InvestmentHandler {
	return &InvestmentHandler{
		investmentLogic: investmentLogic,
		settlementLogic: settlementLogic,
		frontendURL:     frontendURL,
	}
}

// CreateInvestment 创建投资并返回支付链接
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	investorId, ok := middleware.CurrentUserId(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未认证的请求")
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	paymentURL, err := h.investmentLogic.CreateInvestment(logic.CreateInvestmentInput{
		InvestorId:    investorId,
		ProjectId:     req.ProjectId,
		Amount:        req.Amount,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Message:       req.Message,
		ClientIp:      c.ClientIP(),
	})
	if err != nil {
		ErrorResponse(c, statusForError(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "投资已创建，请完成支付",
		CreateInvestmentResponse{PaymentURL: paymentURL})
}

// VnpayCallback 网关支付结果回调：验签、幂等结算，然后重定向回前端
func (h *InvestmentHandler) VnpayCallback(c *gin.Context) {
	params := make(map[string]string)
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[name] = values[0]
		}
	}

	result, err := h.settlementLogic.HandleCallback(params)
	if err != nil {
		c.Redirect(http.StatusFound, h.frontendURL+"/investment-history?status=error")
		return
	}

	if result.Settled {
		c.Redirect(http.StatusFound, fmt.Sprintf("%s/investment-history?status=success&code=%s",
			h.frontendURL, result.TxnRef))
		return
	}
	c.Redirect(http.StatusFound, h.frontendURL+"/investment-history?status=failed")
}

// GetMyInvestments 获取当前用户的投资记录
func (h *InvestmentHandler) GetMyInvestments(c *gin.Context) {
	investorId, ok := middleware.CurrentUserId(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未认证的请求")
		return
	}

	investments, err := h.investmentLogic.GetMyInvestments(investorId)
	if err != nil {
		ErrorResponse(c, statusForError(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取投资记录成功",
		GetInvestmentsResponse{Investments: ToInvestmentResponseList(investments)})
}

// GetProjectInvestments 获取项目的投资记录（仅项目创建者）
func (h *InvestmentHandler) GetProjectInvestments(c *gin.Context) {
	requesterId, ok := middleware.CurrentUserId(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未认证的请求")
		return
	}

	projectId, ok := parseIdParam(c)
	if !ok {
		return
	}

	investments, err := h.investmentLogic.GetProjectInvestments(projectId, requesterId)
	if err != nil {
		ErrorResponse(c, statusForError(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目投资记录成功",
		GetInvestmentsResponse{Investments: ToInvestmentResponseList(investments)})
}

// statusForError 业务错误到HTTP状态码的映射
func statusForError(err error) int {
	switch {
	case errors.Is(err, logic.ErrProjectNotFound),
		errors.Is(err, logic.ErrInvestmentNotFound),
		errors.Is(err, logic.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrProjectNotOpen),
		errors.Is(err, logic.ErrSelfInvestment),
		errors.Is(err, logic.ErrAmountTooLow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, logic.ErrNotProjectFounder):
		return http.StatusForbidden
	case errors.Is(err, vnpay.ErrInvalidSignature):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
