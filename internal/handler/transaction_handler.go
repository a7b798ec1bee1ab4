package handler

import (
	"net/http"
	"strconv"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/logic"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/middleware"
	"github.com/gin-gonic/gin"
)

// TransactionHandler 资金流水处理器
type TransactionHandler struct {
	transactionLogic *logic.TransactionLogic
}

// NewTransactionHandler 创建资金流水处理器
func NewTransactionHandler(transactionLogic *logic.TransactionLogic) *TransactionHandler {
	return &TransactionHandler{transactionLogic: transactionLogic}
}

// GetMyTransactions 获取当前用户的资金流水
func (h *TransactionHandler) GetMyTransactions(c *gin.Context) {
	userId, ok := middleware.CurrentUserId(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未认证的请求")
		return
	}

	txType := c.Query("type")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	transactions, total, err := h.transactionLogic.GetUserTransactions(userId, txType, page, pageSize)
	if err != nil {
		ErrorResponse(c, statusForError(err), err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}

	SuccessResponse(c, http.StatusOK, "获取资金流水成功", GetTransactionsResponse{
		Transactions: ToTransactionResponseList(transactions),
		Pagination:   pagination,
	})
}
