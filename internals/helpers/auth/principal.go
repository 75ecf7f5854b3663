// file: internals/helpers/auth/principal.go
package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/constants"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

const (
	LocPrincipal = "principal"
	LocUserID    = "user_id"
	LocUserRole  = "userRole"
)

// Principal is the authenticated actor resolved by the auth middleware.
type Principal struct {
	ID    uuid.UUID
	Role  string
	Name  string
	Email string
}

func (p Principal) IsAdmin() bool { return p.Role == constants.RoleAdmin }

// CanSee: admins see every student, counselors only the ones they created.
// Assignment as counselor grants nothing.
func (p Principal) CanSee(createdBy uuid.UUID) bool {
	if p.IsAdmin() {
		return true
	}
	return p.ID != uuid.Nil && p.ID == createdBy
}

// VisibleScope returns the gorm scope matching CanSee for a table whose
// owner column is column.
func VisibleScope(p Principal, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.IsAdmin() {
			return db
		}
		return db.Where(column+" = ?", p.ID)
	}
}

func SetPrincipal(c *fiber.Ctx, p Principal) {
	c.Locals(LocPrincipal, p)
	c.Locals(LocUserID, p.ID.String())
	c.Locals(LocUserRole, p.Role)
}

func GetPrincipal(c *fiber.Ctx) (Principal, error) {
	p, ok := c.Locals(LocPrincipal).(Principal)
	if !ok || p.ID == uuid.Nil {
		return Principal{}, helper.Errorf(helper.ErrUnauthorized, "Unauthorized")
	}
	return p, nil
}
