package remoterequest

import (
	"testing"

	"workforce/backend/internal/auth"
)

func TestScopeToOwner(t *testing.T) {
	other := 3

	employee := auth.Claims{UserId: 7, Role: auth.RoleEmployee}
	scoped := scopeToOwner(employee, Filter{UserID: &other})
	if scoped.UserID == nil || *scoped.UserID != 7 {
		t.Errorf("employee list scope = %v, want own id 7", scoped.UserID)
	}

	admin := auth.Claims{UserId: 1, Role: auth.RoleAdmin}
	scoped = scopeToOwner(admin, Filter{UserID: &other})
	if scoped.UserID == nil || *scoped.UserID != 3 {
		t.Errorf("admin list scope = %v, want requested id 3", scoped.UserID)
	}
}

func TestOwnerOnly(t *testing.T) {
	if ownerOnly(auth.Claims{Role: auth.RoleAdmin}) {
		t.Error("admins may withdraw any request")
	}
	if !ownerOnly(auth.Claims{Role: auth.RoleEmployee}) {
		t.Error("employees must be constrained to their own requests")
	}
	if !ownerOnly(auth.Claims{Role: auth.RoleDashboard}) {
		t.Error("dashboard tokens must be constrained too")
	}
}
