package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/service"
	"github.com/vanshsoma/PesuConnect/internal/validation"
	"github.com/vanshsoma/PesuConnect/pkg/response"
)

// SkillHandler 技能模块 HTTP 处理器
type SkillHandler struct {
	skillSvc service.SkillService
}

// NewSkillHandler 创建 SkillHandler
func NewSkillHandler(skillSvc service.SkillService) *SkillHandler {
	return &SkillHandler{skillSvc: skillSvc}
}

// List 我的技能列表
// GET /api/v1/skills/mine
func (h *SkillHandler) List(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.skillSvc.List(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Add 添加技能（未收录的技能名自动入库）
// POST /api/v1/skills
func (h *SkillHandler) Add(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.skillSvc.Add(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleSkillError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateProficiency 更新技能熟练度
// PUT /api/v1/skills/:id
func (h *SkillHandler) UpdateProficiency(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.skillSvc.UpdateProficiency(c.Request.Context(), studentID, c.Param("id"), &req)
	if err != nil {
		h.handleSkillError(c, err)
		return
	}

	response.OK(c, result)
}

// Remove 移除技能
// DELETE /api/v1/skills/:id
func (h *SkillHandler) Remove(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	if err := h.skillSvc.Remove(c.Request.Context(), studentID, c.Param("id")); err != nil {
		h.handleSkillError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SkillHandler) handleSkillError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidProficiency):
		response.BadRequest(c, 18003, "熟练度必须为 Beginner、Intermediate 或 Advanced")
	case errors.Is(err, service.ErrSkillNotFound):
		response.NotFound(c, 18001, "技能不存在")
	case errors.Is(err, service.ErrDuplicateSkill):
		response.Conflict(c, 18002, "已添加过该技能")
	default:
		response.InternalError(c)
	}
}
