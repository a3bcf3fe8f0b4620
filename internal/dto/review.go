package dto

// ── 评价模块 DTO ──

// CreateReviewRequest 提交评价请求
type CreateReviewRequest struct {
	ContractID string `json:"contract_id" binding:"required,uuid"`
	Rating     int    `json:"rating"      binding:"required"`
	ReviewText string `json:"review_text" binding:"omitempty,max=2000"`
}

// ReviewResponse 评价信息响应
type ReviewResponse struct {
	ID           string `json:"id"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"review_text"`
	ProjectTitle string `json:"project_title,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// MyReviewsResponse 我的评价视图（汇总 + 明细）
type MyReviewsResponse struct {
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int64            `json:"review_count"`
	Reviews       []ReviewResponse `json:"reviews"`
}
