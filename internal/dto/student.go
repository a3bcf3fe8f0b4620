package dto

// ── 学生模块 DTO ──

// StudentResponse 学生信息响应（脱敏，不含密码摘要）
type StudentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Department  string `json:"department,omitempty"`
	YearOfStudy int    `json:"year_of_study,omitempty"`
}

// StudentProfileResponse 学生主页（含评价汇总，派生值每次现算）
type StudentProfileResponse struct {
	StudentResponse
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// UpdateStudentRequest 更新个人资料请求
type UpdateStudentRequest struct {
	Name        *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone"         binding:"omitempty,max=20"`
	Department  *string `json:"department"    binding:"omitempty,max=50"`
	YearOfStudy *int    `json:"year_of_study" binding:"omitempty,min=1,max=6"`
}
