package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/service"
	"github.com/vanshsoma/PesuConnect/internal/validation"
	"github.com/vanshsoma/PesuConnect/pkg/response"
)

// ReviewHandler 评价模块 HTTP 处理器
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

// NewReviewHandler 创建 ReviewHandler
func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// Create 提交评价（仅合同所属项目的所有者）
// POST /api/v1/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reviewSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrRatingOutOfRange):
			response.BadRequest(c, 16002, "评分必须在 1 到 5 之间")
		case errors.Is(err, service.ErrContractNotFound):
			response.NotFound(c, 15001, "合同不存在")
		case errors.Is(err, service.ErrNotProjectOwner):
			response.Forbidden(c, 16001, "仅项目所有者可以评价合同")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// MyReviews 我收到的评价（汇总 + 明细）
// GET /api/v1/reviews/mine
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	result, err := h.reviewSvc.MyReviews(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
