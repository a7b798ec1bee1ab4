package task

import (
	"fmt"
	"time"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/config"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/logger"
	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ProjectDeadlineJob 项目截止日扫描任务
//
// 每天对募资中的项目把days_left减1，减到0时按募资结果收口：
// 达到目标金额迁移到completed，否则cancelled。每个项目独立事务，
// 单个项目失败不影响其他项目。
type ProjectDeadlineJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewProjectDeadlineJob 创建项目截止日扫描任务
func NewProjectDeadlineJob(db *gorm.DB, cfg *config.Config) *ProjectDeadlineJob {
	return &ProjectDeadlineJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectDeadlineJob) GetName() string {
	return "project_deadline_sweeper"
}

// GetSchedule 获取调度配置
func (j *ProjectDeadlineJob) GetSchedule() gocron.JobDefinition {
	cron := j.config.Task.SweepCron
	if cron == "" {
		cron = "0 0 * * *"
	}
	return gocron.CronJob(cron, false)
}

// Execute 执行任务
func (j *ProjectDeadlineJob) Execute() {
	logger.Info("Starting project deadline sweep")

	// 只处理募资中的项目，其他状态不受扫描影响
	var projects []model.ProjectModel
	err := j.db.Where("status = ?", model.ProjectStatusActive).Find(&projects).Error
	if err != nil {
		logger.Error("Failed to fetch active projects: %v", err)
		return
	}

	sweptCount := 0
	failedCount := 0

	for _, project := range projects {
		if err := j.sweepProject(project); err != nil {
			logger.Error("Failed to sweep project %d: %v", project.Id, err)
			failedCount++
			continue
		}
		sweptCount++
	}

	logger.Info("Project deadline sweep completed. Swept %d projects, %d failures",
		sweptCount, failedCount)
}

// sweepProject 处理单个项目，独立事务
func (j *ProjectDeadlineJob) sweepProject(project model.ProjectModel) error {
	daysLeft := project.DaysLeft - 1
	if daysLeft < 0 {
		daysLeft = 0
	}

	updates := map[string]interface{}{
		"days_left": daysLeft,
	}

	// 募资窗口结束，按当前进度收口
	if daysLeft <= 0 {
		var newStatus model.ProjectStatus
		if project.CurrentAmount >= project.TargetAmount {
			newStatus = model.ProjectStatusCompleted
			logger.Info("Project %d reached target amount: %d/%d",
				project.Id, project.CurrentAmount, project.TargetAmount)
		} else {
			newStatus = model.ProjectStatusCancelled
			logger.Info("Project %d failed to reach target amount: %d/%d",
				project.Id, project.CurrentAmount, project.TargetAmount)
		}
		updates["status"] = newStatus
		updates["completed_at"] = time.Now()
	}

	tx := j.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 状态条件作为守卫，保证生命周期只向前走
	res := tx.Model(&model.ProjectModel{}).
		Where("id = ? AND status = ?", project.Id, model.ProjectStatusActive).
		Updates(updates)
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("update project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// 项目状态已被其他流程变更，跳过
		tx.Rollback()
		return nil
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit sweep: %w", err)
	}
	return nil
}
