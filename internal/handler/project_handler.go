package handler

import (
	"net/http"
	"strconv"

	"github.com/LMLTech/startup-crowdfund-nhom12/internal/logic"
	"github.com/gin-gonic/gin"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projectLogic *logic.ProjectLogic) *ProjectHandler {
	return &ProjectHandler{projectLogic: projectLogic}
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	category := c.Query("category")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	projects, total, err := h.projectLogic.GetProjects(status, category, page, pageSize)
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

	SuccessResponse(c, http.StatusOK, "获取项目列表成功", GetProjectsResponse{
		Projects:   ToProjectResponseList(projects),
		Pagination: pagination,
	})
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectId, ok := parseIdParam(c)
	if !ok {
		return
	}

	project, err := h.projectLogic.GetProject(projectId)
	if err != nil {
		ErrorResponse(c, statusForError(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目详情成功",
		gin.H{"project": ToProjectResponse(project)})
}

// GetProjectStats 获取项目募资统计
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	projectId, ok := parseIdParam(c)
	if !ok {
		return
	}

	stats, err := h.projectLogic.GetProjectStats(projectId)
	if err != nil {
		ErrorResponse(c, statusForError(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目统计成功", gin.H{"stats": stats})
}

// parseIdParam 解析路径中的项目ID参数
func parseIdParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return id, true
}
