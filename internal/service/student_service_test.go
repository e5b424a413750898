package service

import (
	"gimeldaled_backend/internal/model"
	"testing"
	"time"

	"gorm.io/gorm"
)

// fakeStudentStore 合并语义与 GORM 的 Updates 一致：只动传入的列
type fakeStudentStore struct {
	profiles map[string]*model.StudentProfile
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{profiles: make(map[string]*model.StudentProfile)}
}

func (f *fakeStudentStore) Create(profile *model.StudentProfile) error {
	profile.CreatedAt = time.Now()
	clone := *profile
	f.profiles[profile.UID] = &clone
	return nil
}

func (f *fakeStudentStore) FindByUID(uid string) (*model.StudentProfile, error) {
	profile, ok := f.profiles[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *profile
	return &clone, nil
}

func (f *fakeStudentStore) FindAll() ([]model.StudentProfile, error) {
	var result []model.StudentProfile
	for _, profile := range f.profiles {
		result = append(result, *profile)
	}
	return result, nil
}

func (f *fakeStudentStore) UpdateProject(uid, title, proposalURL string) error {
	profile, ok := f.profiles[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	profile.ProjectTitle = title
	profile.ProjectProposalURL = proposalURL
	profile.UpdatedAt = time.Now()
	return nil
}

func TestGetProfileMissingIsNotAnError(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore())

	profile, err := svc.GetProfile("unknown")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, want nil for missing record", profile)
	}
}

func TestUpdateProjectMergePreservesIdentityFields(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	instructor := "t1"
	store.Create(&model.StudentProfile{
		UID:          "s1",
		FirstName:    "Dana",
		LastName:     "Levi",
		Email:        "dana@example.com",
		InstructorID: &instructor,
	})

	if err := svc.UpdateProject("s1", "Compiler in Go", "https://files.example.com/proposal.pdf"); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}

	got, err := svc.GetProfile("s1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.ProjectTitle != "Compiler in Go" {
		t.Errorf("ProjectTitle = %q", got.ProjectTitle)
	}
	if got.ProjectProposalURL != "https://files.example.com/proposal.pdf" {
		t.Errorf("ProjectProposalURL = %q", got.ProjectProposalURL)
	}
	if got.FirstName != "Dana" || got.LastName != "Levi" || got.Email != "dana@example.com" {
		t.Errorf("identity fields must survive a project update: %+v", got)
	}
	if got.InstructorID == nil || *got.InstructorID != "t1" {
		t.Errorf("InstructorID must survive a project update, got %v", got.InstructorID)
	}
}
