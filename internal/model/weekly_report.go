package model

import (
	"time"
)

// WeeklyReport 学生每周提交的进度报告。对学生只增不改，
// 创建后唯一可变的字段是教师批注 InstructorNotesText
// swagger:model WeeklyReport
type WeeklyReport struct {
	UUIDBase
	StudentID           string    `gorm:"type:varchar(36);index;not null" json:"studentId"`
	WeekStartDate       time.Time `gorm:"not null" json:"weekStartDate"`
	WeeklyStatusText    string    `gorm:"type:text" json:"weeklyStatusText"`
	BlockersText        string    `gorm:"type:text" json:"blockersText"`
	NextWeekDemoText    string    `gorm:"type:text" json:"nextWeekDemoText"`
	NextWeekTasksText   string    `gorm:"type:text" json:"nextWeekTasksText"`
	InstructorNotesText string    `gorm:"type:text" json:"instructorNotesText"`
}

func (WeeklyReport) TableName() string {
	return "weekly_reports"
}
