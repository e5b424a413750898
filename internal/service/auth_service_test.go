package service

import (
	"errors"
	"gimeldaled_backend/internal/config"
	"gimeldaled_backend/internal/model"
	"gimeldaled_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) Create(user *model.User) error {
	if user.ID == "" {
		user.ID = model.GenerateUUID()
	}
	user.CreatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) FindByUID(uid string) (*model.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindAll() ([]model.User, error) {
	var result []model.User
	for _, user := range f.users {
		result = append(result, *user)
	}
	return result, nil
}

func (f *fakeUserStore) UpdateRole(uid string, role model.UserRole) error {
	user, ok := f.users[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Role = role
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Admin: config.AdminConfig{BootstrapEmail: "asaf.amir@gmail.com"},
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret!",
			ExpireTime: time.Hour,
		},
	}
}

func TestRegisterStudent(t *testing.T) {
	users := newFakeUserStore()
	students := newFakeStudentStore()
	svc := NewAuthService(users, students, testConfig())

	user, err := svc.Register("Dana", "Levi", "dana@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.Student {
		t.Errorf("Role = %q, want student", user.Role)
	}
	if user.Password == "password123" {
		t.Error("password must be stored hashed")
	}

	profile, err := students.FindByUID(user.ID)
	if err != nil {
		t.Fatalf("student profile missing after register: %v", err)
	}
	if profile.FirstName != "Dana" || profile.LastName != "Levi" || profile.Email != "dana@example.com" {
		t.Errorf("profile fields = %+v", profile)
	}
	if profile.InstructorID != nil {
		t.Errorf("InstructorID = %v, want nil (unassigned)", profile.InstructorID)
	}
	if profile.ProjectTitle != "" || profile.ProjectProposalURL != "" {
		t.Errorf("project fields must start empty: %+v", profile)
	}
}

func TestRegisterBootstrapAdmin(t *testing.T) {
	users := newFakeUserStore()
	students := newFakeStudentStore()
	svc := NewAuthService(users, students, testConfig())

	// 邮箱大小写不影响引导判定
	user, err := svc.Register("Asaf", "Amir", "Asaf.Amir@Gmail.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.Admin {
		t.Errorf("Role = %q, want admin for bootstrap email", user.Role)
	}

	// 管理员不建学生档案
	if _, err := students.FindByUID(user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("bootstrap admin must not get a student profile, FindByUID err = %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	students := newFakeStudentStore()
	svc := NewAuthService(users, students, testConfig())

	if _, err := svc.Register("Dana", "Levi", "dana@example.com", "password123"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register("Other", "Person", "dana@example.com", "different456")
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("second Register = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	users := newFakeUserStore()
	students := newFakeStudentStore()
	cfg := testConfig()
	svc := NewAuthService(users, students, cfg)

	user, err := svc.Register("Dana", "Levi", "dana@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.Login("dana@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := util.ParseJWT(token, cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UID != user.ID || claims.Role != model.Student || claims.Email != "dana@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := svc.Login("dana@example.com", "wrongpassword"); err == nil {
		t.Error("Login with wrong password should fail")
	}
	if _, err := svc.Login("nobody@example.com", "password123"); err == nil {
		t.Error("Login with unknown email should fail")
	}
}
