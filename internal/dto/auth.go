package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name        string `json:"name"          binding:"required,min=2,max=100"`
	Email       string `json:"email"         binding:"required,email"`
	Password    string `json:"password"      binding:"required,min=8,max=72"`
	Phone       string `json:"phone"         binding:"omitempty,max=20"`
	Department  string `json:"department"    binding:"omitempty,max=50"`
	YearOfStudy int    `json:"year_of_study" binding:"omitempty,min=1,max=6"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // Access Token 有效期（秒）
	Student      StudentResponse `json:"student"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
