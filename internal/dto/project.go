package dto

// ── 项目模块 DTO ──

// CreateProjectRequest 创建项目请求
// 发布日期由服务端指定，不接受客户端传入
type CreateProjectRequest struct {
	Title       string `json:"title"       binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Deadline    string `json:"deadline"    binding:"required"` // YYYY-MM-DD
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Deadline    *string `json:"deadline"    binding:"omitempty"` // YYYY-MM-DD
}

// SearchProjectRequest 项目搜索请求
// keyword/status 均可省略；省略表示不过滤（匹配全部）
type SearchProjectRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	Status  string `form:"status"  binding:"omitempty,oneof=Open 'In Progress' Completed"`
}

// ProjectResponse 项目信息响应
type ProjectResponse struct {
	ID          string           `json:"id"`
	Owner       *StudentResponse `json:"owner,omitempty"` // 所有者注销后为空
	Title       string           `json:"title"`
	Description string           `json:"description"`
	PostDate    string           `json:"post_date"`
	Deadline    string           `json:"deadline"`
	Status      string           `json:"status"`
}

// MyProjectResponse 我的项目列表项（含待处理申请数，每次请求现算）
type MyProjectResponse struct {
	ProjectResponse
	PendingApplications int64 `json:"pending_applications"`
}
