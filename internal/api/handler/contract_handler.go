package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vanshsoma/PesuConnect/internal/service"
	"github.com/vanshsoma/PesuConnect/pkg/response"
)

// ContractHandler 合同模块 HTTP 处理器
type ContractHandler struct {
	contractSvc service.ContractService
}

// NewContractHandler 创建 ContractHandler
func NewContractHandler(contractSvc service.ContractService) *ContractHandler {
	return &ContractHandler{contractSvc: contractSvc}
}

// Get 合同详情
// GET /api/v1/contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	result, err := h.contractSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleContractError(c, err)
		return
	}

	response.OK(c, result)
}

// ListActive 进行中合同（双视角）
// GET /api/v1/contracts/active
func (h *ContractHandler) ListActive(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.contractSvc.ListActive(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Complete 完成合同（项目同步完结）
// POST /api/v1/contracts/:id/complete
func (h *ContractHandler) Complete(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.contractSvc.Complete(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		h.handleContractError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ContractHandler) handleContractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrContractNotFound):
		response.NotFound(c, 15001, "合同不存在")
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13001, "项目不存在")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 13004, "只有项目所有者可以执行该操作")
	default:
		response.InternalError(c)
	}
}
