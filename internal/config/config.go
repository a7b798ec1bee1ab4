package config

import (
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Vnpay    VnpayConfig    `mapstructure:"vnpay"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Task     TaskConfig     `mapstructure:"task"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Mode        string `mapstructure:"mode"`
	FrontendURL string `mapstructure:"frontend_url"` // 支付完成后重定向的前端地址
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// VnpayConfig VNPay网关配置，注入到签名与验签组件，不使用全局变量
type VnpayConfig struct {
	PayURL     string `mapstructure:"pay_url"`     // 网关支付页基础URL
	ReturnURL  string `mapstructure:"return_url"`  // 网关回调地址
	TmnCode    string `mapstructure:"tmn_code"`    // 商户号
	HashSecret string `mapstructure:"hash_secret"` // 签名密钥
}

type AuthConfig struct {
	JwtSecret string `mapstructure:"jwt_secret"`
}

type TaskConfig struct {
	SweepCron string `mapstructure:"sweep_cron"` // 截止日扫描的cron表达式
}

type AuditConfig struct {
	QueueSize int `mapstructure:"queue_size"` // 审计队列长度
	Workers   int `mapstructure:"workers"`    // 审计落库协程数
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/starfund")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.frontend_url", "http://localhost:3000")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "starfund")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("vnpay.pay_url", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	viper.SetDefault("task.sweep_cron", "0 0 * * *")
	viper.SetDefault("audit.queue_size", 1024)
	viper.SetDefault("audit.workers", 2)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
