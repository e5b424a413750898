package service

import (
	"gimeldaled_backend/internal/model"
	"time"
)

// DeriveStatus 根据最近一次周报推导学生的跟踪状态。纯函数，时间由调用方注入。
// 没有周报 -> 缺报；报告时间在 7 天内 -> 正常；7 到 14 天 -> 有风险；超过 14 天 -> 缺报。
// weekStartDate 在未来时 ageDays 为负，落入 <=7 分支判为正常，这是既定行为
func DeriveStatus(latest *model.WeeklyReport, now time.Time) model.TrackingStatus {
	if latest == nil {
		return model.MissingReport
	}

	ageDays := now.Sub(latest.WeekStartDate).Hours() / 24

	switch {
	case ageDays <= 7:
		return model.OnTrack
	case ageDays <= 14:
		return model.AtRisk
	default:
		return model.MissingReport
	}
}
