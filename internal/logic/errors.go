package logic

import (
	"errors"
)

// 业务错误，handler层据此映射HTTP状态码
var (
	ErrProjectNotFound     = errors.New("项目不存在")
	ErrInvestmentNotFound  = errors.New("投资记录不存在")
	ErrTransactionNotFound = errors.New("资金流水不存在")
	ErrProjectNotOpen      = errors.New("项目不在募资中，无法投资")
	ErrSelfInvestment      = errors.New("不能投资自己创建的项目")
	ErrAmountTooLow        = errors.New("投资金额低于最低限额")
	ErrNotProjectFounder   = errors.New("无权查看该项目的投资记录")
)
