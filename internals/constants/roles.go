package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "guru"
)

// Template pesan error role
const (
	ErrForbidden           = "Akses ditolak. Anda tidak memiliki izin yang cukup"
	ErrOnlyAdminsCanAccess = "Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
