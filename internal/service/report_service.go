package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gimeldaled_backend/internal/model"
	"gimeldaled_backend/internal/util"
	"gimeldaled_backend/pkg/logger"
	"gimeldaled_backend/pkg/monitoring"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const latestReportCacheTTL = 5 * time.Minute

// WeeklyReportStore 周报台账的存储接口
type WeeklyReportStore interface {
	Create(report *model.WeeklyReport) error
	FindByID(id string) (*model.WeeklyReport, error)
	FindByStudentID(studentID string) ([]model.WeeklyReport, error)
	UpdateInstructorNotes(id, notes string) error
}

// WeeklyReportPayload 学生每次提交的周报内容
type WeeklyReportPayload struct {
	WeekStartDate     time.Time
	WeeklyStatusText  string
	BlockersText      string
	NextWeekDemoText  string
	NextWeekTasksText string
}

// ReportService 周报业务逻辑。rdb 可以为 nil（测试或未配置缓存时直接查库）
type ReportService struct {
	Reports WeeklyReportStore
	Redis   *redis.Client
}

func NewReportService(reports WeeklyReportStore, rdb *redis.Client) *ReportService {
	return &ReportService{Reports: reports, Redis: rdb}
}

// Create 提交一份周报。教师批注强制初始化为空串，
// createdAt 由存储层在写入时赋值，不信任客户端时钟
func (s *ReportService) Create(ctx context.Context, studentID string, payload WeeklyReportPayload) (*model.WeeklyReport, error) {
	report := &model.WeeklyReport{
		StudentID:           studentID,
		WeekStartDate:       payload.WeekStartDate,
		WeeklyStatusText:    payload.WeeklyStatusText,
		BlockersText:        payload.BlockersText,
		NextWeekDemoText:    payload.NextWeekDemoText,
		NextWeekTasksText:   payload.NextWeekTasksText,
		InstructorNotesText: "",
	}
	if err := s.Reports.Create(report); err != nil {
		return nil, err
	}

	monitoring.ReportSubmissions.Inc()
	s.invalidateLatest(ctx, studentID)
	return report, nil
}

// ListForStudent 返回学生全部周报，不保证顺序
func (s *ReportService) ListForStudent(studentID string) ([]model.WeeklyReport, error) {
	return s.Reports.FindByStudentID(studentID)
}

// LatestForStudent 取 weekStartDate 最大的一份周报，没有周报返回 (nil, nil)。
// 全量拉取后排序，当前规模够用
func (s *ReportService) LatestForStudent(ctx context.Context, studentID string) (*model.WeeklyReport, error) {
	if cached := s.latestFromCache(ctx, studentID); cached != nil {
		return cached, nil
	}

	reports, err := s.Reports.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].WeekStartDate.After(reports[j].WeekStartDate)
	})

	latest := &reports[0]
	s.cacheLatest(ctx, studentID, latest)
	return latest, nil
}

// LatestForStudents 批量取多名学生的最近周报，按学生并发扇出而不是串行。
// 返回的切片与入参等长、一一对应，没有周报的位置为 nil
func (s *ReportService) LatestForStudents(ctx context.Context, studentIDs []string) ([]*model.WeeklyReport, error) {
	latest := make([]*model.WeeklyReport, len(studentIDs))
	errs := make([]error, len(studentIDs))

	var wg sync.WaitGroup
	for i, id := range studentIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			latest[i], errs[i] = s.LatestForStudent(ctx, id)
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return latest, nil
}

// SetInstructorNotes 创建后唯一允许的修改。角色限制由路由层保证
func (s *ReportService) SetInstructorNotes(ctx context.Context, reportID, notes string) error {
	report, err := s.Reports.FindByID(reportID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrReportNotFound
	}
	if err != nil {
		return err
	}

	if err := s.Reports.UpdateInstructorNotes(reportID, notes); err != nil {
		return err
	}

	s.invalidateLatest(ctx, report.StudentID)
	return nil
}

func latestReportCacheKey(studentID string) string {
	return fmt.Sprintf("latest_report:%s", studentID)
}

func (s *ReportService) latestFromCache(ctx context.Context, studentID string) *model.WeeklyReport {
	if s.Redis == nil {
		return nil
	}

	data, err := s.Redis.Get(ctx, latestReportCacheKey(studentID)).Bytes()
	if err != nil {
		return nil
	}

	var report model.WeeklyReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil
	}
	return &report
}

func (s *ReportService) cacheLatest(ctx context.Context, studentID string, report *model.WeeklyReport) {
	if s.Redis == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, latestReportCacheKey(studentID), data, latestReportCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache latest report", zap.String("studentId", studentID), zap.Error(err))
	}
}

func (s *ReportService) invalidateLatest(ctx context.Context, studentID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, latestReportCacheKey(studentID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate latest report cache", zap.String("studentId", studentID), zap.Error(err))
	}
}
