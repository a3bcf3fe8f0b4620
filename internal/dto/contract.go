package dto

// ── 合同模块 DTO ──

// ContractResponse 合同信息响应
type ContractResponse struct {
	ID         string           `json:"id"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Status     string           `json:"status"`
	Freelancer *StudentResponse `json:"freelancer,omitempty"`
	Project    *ProjectResponse `json:"project,omitempty"`
}

// ActiveContractsResponse 进行中合同两个视角的汇总
// 与原 CLI 仪表盘一致：我承接的 + 我雇人的
type ActiveContractsResponse struct {
	AsFreelancer []ContractResponse `json:"as_freelancer"`
	AsOwner      []ContractResponse `json:"as_owner"`
}
