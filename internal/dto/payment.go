package dto

// ── 支付模块 DTO ──

// CreatePaymentRequest 记录支付请求
// Status 为自由文本（默认 Pending），不做状态机约束
type CreatePaymentRequest struct {
	ContractID string  `json:"contract_id" binding:"required,uuid"`
	Amount     float64 `json:"amount"      binding:"required"`
	Method     string  `json:"method"      binding:"required,max=50"`
	Status     string  `json:"status"      binding:"omitempty,max=20"`
}

// PaymentResponse 支付记录响应
type PaymentResponse struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	ContractID  string  `json:"contract_id,omitempty"`
}
