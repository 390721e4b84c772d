package leave

import (
	"testing"

	"workforce/backend/internal/auth"
)

func TestScopeToOwner(t *testing.T) {
	other := 9

	employee := auth.Claims{UserId: 4, Role: auth.RoleEmployee}
	scoped := scopeToOwner(employee, Filter{UserID: &other})
	if scoped.UserID == nil || *scoped.UserID != 4 {
		t.Errorf("employee list scope = %v, want own id 4", scoped.UserID)
	}

	admin := auth.Claims{UserId: 1, Role: auth.RoleAdmin}
	scoped = scopeToOwner(admin, Filter{UserID: &other})
	if scoped.UserID == nil || *scoped.UserID != 9 {
		t.Errorf("admin list scope = %v, want requested id 9", scoped.UserID)
	}
}

func TestOwnerOnly(t *testing.T) {
	if ownerOnly(auth.Claims{Role: auth.RoleAdmin}) {
		t.Error("admins may withdraw any request")
	}
	if !ownerOnly(auth.Claims{Role: auth.RoleEmployee}) {
		t.Error("employees must be constrained to their own requests")
	}
}
