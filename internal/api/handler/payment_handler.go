package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/service"
	"github.com/vanshsoma/PesuConnect/internal/validation"
	"github.com/vanshsoma/PesuConnect/pkg/response"
)

// PaymentHandler 支付记录模块 HTTP 处理器
type PaymentHandler struct {
	paymentSvc service.PaymentService
}

// NewPaymentHandler 创建 PaymentHandler
func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Create 登记支付记录（仅项目所有者）
// POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.paymentSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrNonPositiveAmount):
			response.BadRequest(c, 17001, "金额必须大于 0")
		case errors.Is(err, service.ErrContractNotFound):
			response.NotFound(c, 15001, "合同不存在")
		case errors.Is(err, service.ErrNotProjectOwner):
			response.Forbidden(c, 16001, "仅项目所有者可以执行该操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// ListByContract 合同下的支付记录（合同双方可查）
// GET /api/v1/contracts/:id/payments
func (h *PaymentHandler) ListByContract(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.paymentSvc.ListByContract(c.Request.Context(), c.Param("id"), studentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContractNotFound):
			response.NotFound(c, 15001, "合同不存在")
		case errors.Is(err, service.ErrNotProjectOwner):
			response.Forbidden(c, 16001, "仅合同双方可以查看支付记录")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
