package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/service"
	"github.com/vanshsoma/PesuConnect/internal/validation"
	"github.com/vanshsoma/PesuConnect/pkg/response"
)

// ProjectHandler 项目模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// Create 发布项目
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.projectSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.Created(c, result)
}

// Get 项目详情
// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	result, err := h.projectSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 更新项目
// PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.projectSvc.Update(c.Request.Context(), c.Param("id"), &req, studentID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除项目
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), c.Param("id"), studentID); err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListMine 我发布的项目（含待处理申请数）
// GET /api/v1/projects/mine
func (h *ProjectHandler) ListMine(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.projectSvc.ListMine(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Search 搜索项目
// GET /api/v1/projects?keyword=xxx&status=Open&page=1&page_size=20
func (h *ProjectHandler) Search(c *gin.Context) {
	var req dto.SearchProjectRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.projectSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

func (h *ProjectHandler) handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13001, "项目不存在")
	case errors.Is(err, service.ErrProjectDateInvalid):
		response.BadRequest(c, 13002, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, validation.ErrDeadlineNotFuture):
		response.BadRequest(c, 13003, "截止日期必须晚于今天")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 13004, "只有项目所有者可以执行该操作")
	default:
		response.InternalError(c)
	}
}
