package service

import (
	"context"
	"gimeldaled_backend/internal/model"
	"time"
)

// StudentRow 教师总览里的一行：学生档案 + 最近周报 + 推导状态
type StudentRow struct {
	Student      model.StudentProfile `json:"student"`
	LatestReport *model.WeeklyReport  `json:"latestReport"`
	Status       model.TrackingStatus `json:"status"`
}

// OverviewService 组装教师端的学生总览。
// Now 可注入，测试里用固定时钟保证状态推导可复现
type OverviewService struct {
	Students StudentStore
	Reports  *ReportService
	Now      func() time.Time
}

func NewOverviewService(students StudentStore, reports *ReportService) *OverviewService {
	return &OverviewService{
		Students: students,
		Reports:  reports,
		Now:      time.Now,
	}
}

// StudentRows 列出全部学生及其状态。最近周报按学生并发拉取（扇出），
// 返回的第二个值是本周缺报人数
func (s *OverviewService) StudentRows(ctx context.Context) ([]StudentRow, int, error) {
	students, err := s.Students.FindAll()
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(students))
	for i, st := range students {
		ids[i] = st.UID
	}

	latest, err := s.Reports.LatestForStudents(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	now := s.Now()
	rows := make([]StudentRow, len(students))
	missing := 0
	for i, st := range students {
		status := DeriveStatus(latest[i], now)
		if status == model.MissingReport {
			missing++
		}
		rows[i] = StudentRow{
			Student:      st,
			LatestReport: latest[i],
			Status:       status,
		}
	}

	return rows, missing, nil
}
