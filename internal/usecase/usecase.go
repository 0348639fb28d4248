package usecase

import (
	"github.com/studentperks/console-api/shared/apperror"
	"github.com/studentperks/console-api/shared/auth"
)

// Authorization checks shared by every operation. Order matters: an
// unauthenticated caller is always reported as unauthenticated, and a
// non-admin caller is reported as permission-denied before any input is
// looked at.

func requireAuthenticated(caller auth.Principal) error {
	if !caller.Authenticated() {
		return apperror.Unauthenticated("caller is not authenticated")
	}

	return nil
}

func requireAdmin(caller auth.Principal) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}

	if !caller.Admin {
		return apperror.PermissionDenied("admin access required")
	}

	return nil
}

// requireAdminOrSelf lets admins through, and lets any account operate on its
// own resources.
func requireAdminOrSelf(caller auth.Principal, uid string) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}

	if !caller.Admin && caller.UID != uid {
		return apperror.PermissionDenied("access to this resource requires admin")
	}

	return nil
}
