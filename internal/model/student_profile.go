package model

import (
	"time"
)

// StudentProfile 学生档案，与 User 按 uid 一对一
// InstructorID 预留了指导教师绑定，目前没有任何查询按它过滤
// swagger:model StudentProfile
type StudentProfile struct {
	UID                string    `gorm:"primaryKey;type:varchar(36)" json:"uid"`
	FirstName          string    `gorm:"size:100" json:"firstName"`
	LastName           string    `gorm:"size:100" json:"lastName"`
	Email              string    `gorm:"size:100" json:"email"`
	InstructorID       *string   `gorm:"type:varchar(36)" json:"instructorId"`
	ProjectTitle       string    `gorm:"size:255" json:"projectTitle"`
	ProjectProposalURL string    `gorm:"size:512" json:"projectProposalUrl"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (StudentProfile) TableName() string {
	return "students"
}
