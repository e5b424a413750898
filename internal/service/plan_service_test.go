package service

import (
	"errors"
	"gimeldaled_backend/internal/model"
	"gimeldaled_backend/internal/util"
	"sort"
	"testing"
	"time"

	"gorm.io/gorm"
)

// fakePlanStore 内存实现，统计写请求次数以验证上限拒绝时零写入
type fakePlanStore struct {
	items       map[string]*model.FuturePlanItem
	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{items: make(map[string]*model.FuturePlanItem)}
}

func (f *fakePlanStore) Create(item *model.FuturePlanItem) error {
	f.createCalls++
	if item.ID == "" {
		item.ID = model.GenerateUUID()
	}
	item.CreatedAt = time.Now()
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakePlanStore) FindByID(id string) (*model.FuturePlanItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (f *fakePlanStore) FindByStudentID(studentID string) ([]model.FuturePlanItem, error) {
	var result []model.FuturePlanItem
	for _, item := range f.items {
		if item.StudentID == studentID {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].WeekIndex < result[j].WeekIndex
	})
	return result, nil
}

func (f *fakePlanStore) MaxWeekIndex(studentID string) (int, error) {
	max := 0
	for _, item := range f.items {
		if item.StudentID == studentID && item.WeekIndex > max {
			max = item.WeekIndex
		}
	}
	return max, nil
}

func (f *fakePlanStore) UpdateDescription(id, description string, tillDate *time.Time) error {
	f.updateCalls++
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Description = description
	item.TillDate = tillDate
	return nil
}

func (f *fakePlanStore) Delete(id string) error {
	f.deleteCalls++
	delete(f.items, id)
	return nil
}

func TestAddNextAssignsSequentialIndexes(t *testing.T) {
	store := newFakePlanStore()
	svc := NewPlanService(store)

	first, err := svc.AddNext("s1")
	if err != nil {
		t.Fatalf("AddNext: %v", err)
	}
	if first.WeekIndex != 1 {
		t.Errorf("first WeekIndex = %d, want 1", first.WeekIndex)
	}
	if first.Description != "" || first.TillDate != nil {
		t.Errorf("new item should start blank, got %+v", first)
	}

	second, err := svc.AddNext("s1")
	if err != nil {
		t.Fatalf("AddNext: %v", err)
	}
	if second.WeekIndex != 2 {
		t.Errorf("second WeekIndex = %d, want 2", second.WeekIndex)
	}
}

func TestAddNextLeavesHolesAlone(t *testing.T) {
	store := newFakePlanStore()
	svc := NewPlanService(store)

	for i := 0; i < 5; i++ {
		if _, err := svc.AddNext("s1"); err != nil {
			t.Fatalf("AddNext: %v", err)
		}
	}

	// 删除中间条目后，索引不重排，追加仍基于最大值
	items, _ := store.FindByStudentID("s1")
	if err := svc.Remove("s1", items[2].ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	next, err := svc.AddNext("s1")
	if err != nil {
		t.Fatalf("AddNext: %v", err)
	}
	if next.WeekIndex != 6 {
		t.Errorf("WeekIndex after hole = %d, want 6", next.WeekIndex)
	}
}

func TestAddNextCapRefusesWithoutWrite(t *testing.T) {
	store := newFakePlanStore()
	store.items["full"] = &model.FuturePlanItem{
		UUIDBase:  model.UUIDBase{ID: "full"},
		StudentID: "s1",
		WeekIndex: model.MaxPlanItems,
	}
	svc := NewPlanService(store)

	_, err := svc.AddNext("s1")
	if !errors.Is(err, util.ErrPlanLimitReached) {
		t.Fatalf("AddNext at cap = %v, want ErrPlanLimitReached", err)
	}
	if store.createCalls != 0 || store.updateCalls != 0 || store.deleteCalls != 0 {
		t.Errorf("cap refusal must not issue writes: creates=%d updates=%d deletes=%d",
			store.createCalls, store.updateCalls, store.deleteCalls)
	}

	// 其他学生不受影响
	if _, err := svc.AddNext("s2"); err != nil {
		t.Errorf("AddNext for another student: %v", err)
	}
}

func TestListForStudentSortedByWeekIndex(t *testing.T) {
	store := newFakePlanStore()
	svc := NewPlanService(store)

	for i := 0; i < 4; i++ {
		if _, err := svc.AddNext("s1"); err != nil {
			t.Fatalf("AddNext: %v", err)
		}
	}

	items, err := svc.ListForStudent("s1")
	if err != nil {
		t.Fatalf("ListForStudent: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("len(items) = %d, want 4", len(items))
	}
	for i, item := range items {
		if item.WeekIndex != i+1 {
			t.Errorf("items[%d].WeekIndex = %d, want %d", i, item.WeekIndex, i+1)
		}
	}
}

func TestUpdateDescriptionReplacesBothFields(t *testing.T) {
	store := newFakePlanStore()
	svc := NewPlanService(store)

	item, _ := svc.AddNext("s1")
	till := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if err := svc.UpdateDescription("s1", item.ID, "finish parser", &till); err != nil {
		t.Fatalf("UpdateDescription: %v", err)
	}

	// 整体替换：截止日期传 nil 时清空而不是保留旧值
	if err := svc.UpdateDescription("s1", item.ID, "finish parser and tests", nil); err != nil {
		t.Fatalf("UpdateDescription: %v", err)
	}

	got, _ := store.FindByID(item.ID)
	if got.Description != "finish parser and tests" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.TillDate != nil {
		t.Errorf("TillDate = %v, want nil", got.TillDate)
	}
}

func TestPlanOwnershipEnforced(t *testing.T) {
	store := newFakePlanStore()
	svc := NewPlanService(store)

	item, _ := svc.AddNext("s1")

	if err := svc.UpdateDescription("s2", item.ID, "hijack", nil); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("UpdateDescription by non-owner = %v, want ErrPermissionDenied", err)
	}
	if err := svc.Remove("s2", item.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("Remove by non-owner = %v, want ErrPermissionDenied", err)
	}

	if err := svc.UpdateDescription("s1", "missing", "x", nil); !errors.Is(err, util.ErrPlanItemNotFound) {
		t.Errorf("UpdateDescription on missing item = %v, want ErrPlanItemNotFound", err)
	}

	if err := svc.Remove("s1", item.ID); err != nil {
		t.Errorf("Remove by owner: %v", err)
	}
	if _, err := store.FindByID(item.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("item still present after Remove")
	}
}
