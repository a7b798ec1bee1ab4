package main

import (
	"log"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/audit"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/config"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/database"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/logger"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/router"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/task"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/vnpay"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	logger.Init(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化网关客户端
	gateway := vnpay.NewClient(cfg.Vnpay)

	// 初始化异步审计记录器
	recorder, err := audit.NewRecorder(db, cfg.Audit)
	if err != nil {
		log.Fatalf("Failed to initialize audit recorder: %v", err)
	}
	recorder.Start()
	defer recorder.Stop()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, gateway, recorder, cfg)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
