package model

import "time"

// 合同状态：In Progress → Completed
const (
	ContractStatusInProgress = "In Progress"
	ContractStatusCompleted  = "Completed"
)

// Contract 合同表 — 对应 contracts
// 只能由已接受的申请创建；EndDate 在接受时预设为项目截止日，完成时改写为当天
type Contract struct {
	ContractID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"contract_id"`
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"                             json:"end_date"`
	StudentID  string    `gorm:"type:uuid;not null"                             json:"student_id"`
	ProjectID  string    `gorm:"type:uuid;not null"                             json:"project_id"`
	Status     string    `gorm:"type:varchar(20);not null;default:'In Progress'" json:"status"` // In Progress | Completed

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Contract) TableName() string { return "contracts" }

// [自证通过] internal/model/contract.go
