package audit

import (
	"context"
	"encoding/json"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/config"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/logger"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Entry 一条审计记录
type Entry struct {
	UserId     int64
	Action     string
	EntityType string
	EntityId   int64
	IpAddress  string
	Metadata   map[string]interface{}
}

// Recorder 异步审计记录器
//
// Record永不阻塞调用方：记录先进入有界队列，由协程池落库；
// 队列满时直接丢弃，落库失败只记日志，不影响主流程。
type Recorder struct {
	db     *gorm.DB
	queue  chan Entry
	pool   *ants.Pool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRecorder 创建审计记录器
func NewRecorder(db *gorm.DB, cfg config.AuditConfig) (*Recorder, error) {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1024
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Recorder{
		db:     db,
		queue:  make(chan Entry, queueSize),
		pool:   pool,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start 启动分发循环
func (r *Recorder) Start() {
	go r.loop()
}

// Stop 停止记录器，丢弃未消费的记录
func (r *Recorder) Stop() {
	r.cancel()
	r.pool.Release()
}

// Record 投递一条审计记录，队列满时丢弃
func (r *Recorder) Record(e Entry) {
	select {
	case r.queue <- e:
	default:
		logger.Warn("Audit queue full, dropping entry action=%s entity=%s/%d",
			e.Action, e.EntityType, e.EntityId)
	}
}

// loop 分发循环，把队列中的记录交给协程池落库
func (r *Recorder) loop() {
	for {
		select {
		case <-r.ctx.Done():
			logger.Info("Audit recorder stopped")
			return
		case entry := <-r.queue:
			if err := r.pool.Submit(func() {
				r.persist(entry)
			}); err != nil {
				logger.Warn("Failed to submit audit entry: %v", err)
			}
		}
	}
}

// persist 落库，任何失败都只记日志
func (r *Recorder) persist(e Entry) {
	metadata := "{}"
	if e.Metadata != nil {
		if data, err := json.Marshal(e.Metadata); err == nil {
			metadata = string(data)
		}
	}

	record := model.ActivityLogModel{
		UserId:     e.UserId,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityId:   e.EntityId,
		IpAddress:  e.IpAddress,
		Metadata:   metadata,
	}

	if err := r.db.Create(&record).Error; err != nil {
		logger.Warn("Failed to persist audit entry action=%s: %v", e.Action, err)
	}
}
