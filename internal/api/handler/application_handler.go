package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/service"
	"github.com/vanshsoma/PesuConnect/pkg/response"
)

// ApplicationHandler 申请模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Create 提交申请
// POST /api/v1/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.appSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.Created(c, result)
}

// Accept 接受申请（级联建合同、拒其余申请、项目转进行中）
// POST /api/v1/applications/:id/accept
func (h *ApplicationHandler) Accept(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.appSvc.Accept(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, result)
}

// Reject 拒绝申请
// POST /api/v1/applications/:id/reject
func (h *ApplicationHandler) Reject(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.appSvc.Reject(c.Request.Context(), c.Param("id"), studentID); err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListByProject 项目收到的申请（仅所有者）
// GET /api/v1/projects/:id/applications?status=Pending
func (h *ApplicationHandler) ListByProject(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.appSvc.ListByProject(c.Request.Context(), c.Param("id"), c.Query("status"), studentID)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine 我提交的申请
// GET /api/v1/applications/mine
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.appSvc.ListMine(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

func (h *ApplicationHandler) handleApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 14001, "申请不存在")
	case errors.Is(err, service.ErrApplicationNotPending):
		response.Conflict(c, 14002, "申请不处于待处理状态")
	case errors.Is(err, service.ErrSelfApplication):
		response.BadRequest(c, 14003, "不能申请自己发布的项目")
	case errors.Is(err, service.ErrProjectNotOpen):
		response.Conflict(c, 14004, "项目不处于开放状态")
	case errors.Is(err, service.ErrDuplicateApplication):
		response.Conflict(c, 14005, "已申请过该项目")
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13001, "项目不存在")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 13004, "只有项目所有者可以执行该操作")
	default:
		response.InternalError(c)
	}
}
