package model

// Role is a teacher account's role. Each role carries a fixed permission set.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var rolePermissions = map[Role][]Permission{
	RoleTeacher: {
		PermissionClassesRead,
		PermissionClassesWrite,
		PermissionStudentsRead,
		PermissionStudentsWrite,
		PermissionStudentsResetSession,
		PermissionExamsRead,
		PermissionAnalysisRead,
		PermissionHomeworkWrite,
		PermissionSettingsRead,
	},
	RoleAdmin: AllPermissions,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns the permission codes embedded in a teacher token.
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
