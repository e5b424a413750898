package service

import (
	"gimeldaled_backend/internal/model"
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	report := func(daysAgo int) *model.WeeklyReport {
		return &model.WeeklyReport{
			WeekStartDate: now.Add(-time.Duration(daysAgo) * 24 * time.Hour),
		}
	}

	tests := []struct {
		name   string
		latest *model.WeeklyReport
		want   model.TrackingStatus
	}{
		{"no report", nil, model.MissingReport},
		{"same day", report(0), model.OnTrack},
		{"three days old", report(3), model.OnTrack},
		{"exactly seven days", report(7), model.OnTrack},
		{"eight days old", report(8), model.AtRisk},
		{"exactly fourteen days", report(14), model.AtRisk},
		{"fifteen days old", report(15), model.MissingReport},
		{"thirty days old", report(30), model.MissingReport},
		{"future date", report(-3), model.OnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.latest, now)
			if got != tt.want {
				t.Errorf("DeriveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveStatusHourBoundary(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	// 7天零1小时：刚跨过正常线
	latest := &model.WeeklyReport{
		WeekStartDate: now.Add(-(7*24 + 1) * time.Hour),
	}
	if got := DeriveStatus(latest, now); got != model.AtRisk {
		t.Errorf("DeriveStatus(7d1h) = %q, want %q", got, model.AtRisk)
	}

	// 14天零1小时：刚跨过风险线
	latest = &model.WeeklyReport{
		WeekStartDate: now.Add(-(14*24 + 1) * time.Hour),
	}
	if got := DeriveStatus(latest, now); got != model.MissingReport {
		t.Errorf("DeriveStatus(14d1h) = %q, want %q", got, model.MissingReport)
	}
}
