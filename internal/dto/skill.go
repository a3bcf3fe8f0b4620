package dto

// ── 技能模块 DTO ──

// AddSkillRequest 添加技能请求
// 技能名未收录时自动入库
type AddSkillRequest struct {
	SkillName   string `json:"skill_name"  binding:"required,min=1,max=100"`
	Proficiency string `json:"proficiency" binding:"required"`
}

// UpdateSkillRequest 更新熟练度请求
type UpdateSkillRequest struct {
	Proficiency string `json:"proficiency" binding:"required"`
}

// SkillResponse 学生技能响应
type SkillResponse struct {
	SkillID     string `json:"skill_id"`
	SkillName   string `json:"skill_name"`
	Proficiency string `json:"proficiency"`
}
