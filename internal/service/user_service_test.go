package service

import (
	"errors"
	"gimeldaled_backend/internal/model"
	"gimeldaled_backend/internal/util"
	"testing"

	"gorm.io/gorm"
)

func TestUpdateRole(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users)

	user := &model.User{Email: "dana@example.com", Role: model.Student}
	users.Create(user)

	if err := svc.UpdateRole(user.ID, model.Teacher); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	got, _ := users.FindByUID(user.ID)
	if got.Role != model.Teacher {
		t.Errorf("Role = %q, want teacher", got.Role)
	}

	if err := svc.UpdateRole(user.ID, model.UserRole("superuser")); !errors.Is(err, util.ErrInvalidRole) {
		t.Errorf("UpdateRole with bogus role = %v, want ErrInvalidRole", err)
	}

	if err := svc.UpdateRole("no-such-uid", model.Admin); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("UpdateRole for missing user = %v, want ErrRecordNotFound", err)
	}
}
