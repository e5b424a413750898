package service

import (
	"context"
	"gimeldaled_backend/internal/model"
	"testing"
	"time"
)

func TestStudentRowsStatusAndMissingCount(t *testing.T) {
	students := newFakeStudentStore()
	reports := newFakeReportStore()

	students.Create(&model.StudentProfile{UID: "s1", FirstName: "Dana"})
	students.Create(&model.StudentProfile{UID: "s2", FirstName: "Noam"})
	students.Create(&model.StudentProfile{UID: "s3", FirstName: "Yael"})

	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	reportSvc := NewReportService(reports, nil)
	ctx := context.Background()

	// s1 三天前交过报，s2 十天没交，s3 从未交过
	reportSvc.Create(ctx, "s1", WeeklyReportPayload{WeekStartDate: now.Add(-3 * 24 * time.Hour)})
	reportSvc.Create(ctx, "s2", WeeklyReportPayload{WeekStartDate: now.Add(-10 * 24 * time.Hour)})

	svc := NewOverviewService(students, reportSvc)
	svc.Now = func() time.Time { return now }

	rows, missing, err := svc.StudentRows(ctx)
	if err != nil {
		t.Fatalf("StudentRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if missing != 1 {
		t.Errorf("missing = %d, want 1", missing)
	}

	statusByUID := make(map[string]model.TrackingStatus)
	for _, row := range rows {
		statusByUID[row.Student.UID] = row.Status
		if row.Student.UID == "s3" && row.LatestReport != nil {
			t.Errorf("s3 has no reports, LatestReport = %+v", row.LatestReport)
		}
	}

	if statusByUID["s1"] != model.OnTrack {
		t.Errorf("s1 status = %q, want on_track", statusByUID["s1"])
	}
	if statusByUID["s2"] != model.AtRisk {
		t.Errorf("s2 status = %q, want at_risk", statusByUID["s2"])
	}
	if statusByUID["s3"] != model.MissingReport {
		t.Errorf("s3 status = %q, want missing_report", statusByUID["s3"])
	}
}
