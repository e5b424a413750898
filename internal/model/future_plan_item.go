package model

import (
	"time"
)

// MaxPlanItems 每个学生最多 20 条计划（周索引 1..20，删除后允许出现空洞）
const MaxPlanItems = 20

// FuturePlanItem 面向未来周的计划条目。WeekIndex 按学生单调分配，系统不会重排
// swagger:model FuturePlanItem
type FuturePlanItem struct {
	UUIDBase
	StudentID   string     `gorm:"type:varchar(36);index;not null" json:"studentId"`
	WeekIndex   int        `gorm:"not null" json:"weekIndex"`
	Description string     `gorm:"type:text" json:"description"`
	TillDate    *time.Time `json:"tillDate"`
}

func (FuturePlanItem) TableName() string {
	return "future_plan_items"
}
