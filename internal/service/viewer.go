package service

import (
	"errors"

	"github.com/sinavkoc/sinavkoc-backend/internal/model"
)

// ErrForbidden is returned when a viewer may not act on a resource.
var ErrForbidden = errors.New("forbidden")

// Viewer identifies who is asking for data. Handlers build it from the
// request's JWT claims and pass it explicitly to every service call that
// has to decide whose exams, classes or homework are visible.
type Viewer struct {
	Kind        TokenType
	UserID      int
	ClassID     int
	Permissions []string
}

// ViewerFromClaims builds the Viewer for a validated token.
func ViewerFromClaims(c *Claims) Viewer {
	return Viewer{
		Kind:        c.TokenType,
		UserID:      c.UserID,
		ClassID:     c.ClassID,
		Permissions: c.Permissions,
	}
}

// Can reports whether the viewer holds a permission. Only teachers hold any.
func (v Viewer) Can(p model.Permission) bool {
	if v.Kind != TokenTypeTeacher {
		return false
	}
	for _, have := range v.Permissions {
		if have == string(p) {
			return true
		}
	}
	return false
}

// IsTeacher reports whether the viewer is a teacher or administrator.
func (v Viewer) IsTeacher() bool { return v.Kind == TokenTypeTeacher }

// OwnStudentID returns the student a student or parent token is bound to.
func (v Viewer) OwnStudentID() (int, bool) {
	if v.Kind == TokenTypeStudent || v.Kind == TokenTypeParent {
		return v.UserID, true
	}
	return 0, false
}

// TeacherScope returns the teacher ID that limits class-level queries, or
// nil when the viewer may see every class.
func (v Viewer) TeacherScope() *int {
	if v.Can(model.PermissionAllClasses) {
		return nil
	}
	id := v.UserID
	return &id
}

// CanManageClass reports whether a teacher viewer may act on a class owned by ownerID.
func (v Viewer) CanManageClass(ownerID int) bool {
	if !v.IsTeacher() {
		return false
	}
	return v.Can(model.PermissionAllClasses) || v.UserID == ownerID
}
