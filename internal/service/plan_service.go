package service

import (
	"errors"
	"gimeldaled_backend/internal/model"
	"gimeldaled_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// FuturePlanStore 未来计划条目的存储接口
type FuturePlanStore interface {
	Create(item *model.FuturePlanItem) error
	FindByID(id string) (*model.FuturePlanItem, error)
	FindByStudentID(studentID string) ([]model.FuturePlanItem, error)
	MaxWeekIndex(studentID string) (int, error)
	UpdateDescription(id, description string, tillDate *time.Time) error
	Delete(id string) error
}

// PlanService 未来计划业务逻辑。条目只有 创建 -> 编辑* -> 删除 三态，不归档不锁定
type PlanService struct {
	Plans FuturePlanStore
}

func NewPlanService(plans FuturePlanStore) *PlanService {
	return &PlanService{Plans: plans}
}

// ListForStudent 按周索引升序返回学生的计划条目
func (s *PlanService) ListForStudent(studentID string) ([]model.FuturePlanItem, error) {
	return s.Plans.FindByStudentID(studentID)
}

// AddNext 追加下一周的计划：weekIndex = 现有最大值 + 1（空列表从 1 开始）。
// 最大索引达到 20 时拒绝且不发任何写请求。
// 索引一经分配不再重排，中间删除会留下空洞
func (s *PlanService) AddNext(studentID string) (*model.FuturePlanItem, error) {
	maxIndex, err := s.Plans.MaxWeekIndex(studentID)
	if err != nil {
		return nil, err
	}

	if maxIndex >= model.MaxPlanItems {
		return nil, util.ErrPlanLimitReached
	}

	item := &model.FuturePlanItem{
		StudentID:   studentID,
		WeekIndex:   maxIndex + 1,
		Description: "",
		TillDate:    nil,
	}
	if err := s.Plans.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateDescription 描述和截止日期整体替换。callerUID 必须是条目的拥有者
func (s *PlanService) UpdateDescription(callerUID, id, description string, tillDate *time.Time) error {
	item, err := s.findOwned(callerUID, id)
	if err != nil {
		return err
	}
	return s.Plans.UpdateDescription(item.ID, description, tillDate)
}

// Remove 删除条目。callerUID 必须是条目的拥有者
func (s *PlanService) Remove(callerUID, id string) error {
	item, err := s.findOwned(callerUID, id)
	if err != nil {
		return err
	}
	return s.Plans.Delete(item.ID)
}

func (s *PlanService) findOwned(callerUID, id string) (*model.FuturePlanItem, error) {
	item, err := s.Plans.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPlanItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if item.StudentID != callerUID {
		return nil, util.ErrPermissionDenied
	}
	return item, nil
}
