package dto

// ── 申请模块 DTO ──

// CreateApplicationRequest 提交申请请求
type CreateApplicationRequest struct {
	ProjectID string `json:"project_id" binding:"required,uuid"`
}

// ApplicationResponse 申请信息响应
type ApplicationResponse struct {
	ID              string           `json:"id"`
	ApplicationDate string           `json:"application_date"`
	Status          string           `json:"status"`
	Applicant       *StudentResponse `json:"applicant,omitempty"`
	Project         *ProjectResponse `json:"project,omitempty"`
}

// AcceptApplicationResponse 接受申请响应（返回新建合同）
type AcceptApplicationResponse struct {
	Application ApplicationResponse `json:"application"`
	Contract    ContractResponse    `json:"contract"`
}
