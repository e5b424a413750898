package util

import "errors"

var (
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidRole      = errors.New("invalid role")
	ErrPlanLimitReached = errors.New("future plan limit reached (max 20)")
	ErrReportNotFound   = errors.New("weekly report not found")
	ErrPlanItemNotFound = errors.New("future plan item not found")
)
