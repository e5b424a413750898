package model

// TrackingStatus 学生跟踪状态，由最近一次周报的时间推导
type TrackingStatus string

const (
	OnTrack       TrackingStatus = "on_track"
	AtRisk        TrackingStatus = "at_risk"
	MissingReport TrackingStatus = "missing_report"
)
