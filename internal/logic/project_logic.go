package logic

import (
	"errors"
	"fmt"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目读取逻辑（项目的创建与审核由外部后台服务负责）
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目读取逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects(status, category string, page, pageSize int) ([]model.ProjectModel, int64, error) {
	query := p.db.Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目总数失败: %w", err)
	}

	var projects []model.ProjectModel
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目列表失败: %w", err)
	}

	return projects, total, nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}
	return &project, nil
}

// GetProjectStats 获取项目募资统计
func (p *ProjectLogic) GetProjectStats(id int64) (map[string]interface{}, error) {
	project, err := p.GetProject(id)
	if err != nil {
		return nil, err
	}

	// 成功投资笔数（区别于去重后的投资人数）
	var successCount int64
	if err := p.db.Model(&model.InvestmentModel{}).
		Where("project_id = ? AND status = ?", id, model.InvestmentStatusSuccess).
		Count(&successCount).Error; err != nil {
		return nil, fmt.Errorf("获取投资笔数失败: %w", err)
	}

	// 募资完成百分比
	completionPercentage := float64(0)
	if project.TargetAmount > 0 {
		completionPercentage = float64(project.CurrentAmount) / float64(project.TargetAmount) * 100
	}

	return map[string]interface{}{
		"project_id":            project.Id,
		"current_amount":        project.CurrentAmount,
		"target_amount":         project.TargetAmount,
		"investor_count":        project.InvestorCount,
		"investment_count":      successCount,
		"completion_percentage": completionPercentage,
		"days_left":             project.DaysLeft,
		"status":                project.Status,
	}, nil
}
