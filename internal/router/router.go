package router

import (
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/audit"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/config"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/handler"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/logic"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/middleware"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/vnpay"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, gateway *vnpay.Client, recorder *audit.Recorder, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "startup-crowdfund",
		})
	})

	investmentLogic := logic.NewInvestmentLogic(db, gateway, recorder)
	settlementLogic := logic.NewSettlementLogic(db, gateway, recorder)
	projectLogic := logic.NewProjectLogic(db)
	transactionLogic := logic.NewTransactionLogic(db)

	investmentHandler := handler.NewInvestmentHandler(investmentLogic, settlementLogic, cfg.Server.FrontendURL)
	projectHandler := handler.NewProjectHandler(projectLogic)
	transactionHandler := handler.NewTransactionHandler(transactionLogic)

	authRequired := middleware.JwtAuth(cfg.Auth.JwtSecret)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 投资相关路由
		investments := v1.Group("/investments")
		{
			investments.POST("", authRequired, investmentHandler.CreateInvestment)
			investments.GET("/my", authRequired, investmentHandler.GetMyInvestments)
			// 网关回调：无认证，靠验签与幂等结算保护
			investments.GET("/vnpay-callback", investmentHandler.VnpayCallback)
		}

		// 项目相关路由
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/stats", projectHandler.GetProjectStats)
			projects.GET("/:id/investments", authRequired, investmentHandler.GetProjectInvestments)
		}

		// 资金流水路由
		transactions := v1.Group("/transactions")
		{
			transactions.GET("/my", authRequired, transactionHandler.GetMyTransactions)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
