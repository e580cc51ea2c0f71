package auth

import (
	"github.com/schoolhub/classroom/internal/models"
	"github.com/schoolhub/classroom/internal/tokens"
)

// Identity is what a verified access token asserts about the caller.
// Operations trust it without re-querying the store.
type Identity struct {
	UserID uint
	Email  string
	Role   int
}

// RolePredicate decides whether a role may perform an operation.
type RolePredicate func(role int) bool

func AnyRole(int) bool { return true }

func TeacherOrAdmin(role int) bool {
	return role == models.RoleTeacher || role == models.RoleAdmin
}

func AdminOnly(role int) bool { return role == models.RoleAdmin }

// Guard is the single entry check for protected operations. Every resolver
// calls Authenticate with its role predicate instead of re-implementing
// claim parsing.
type Guard struct {
	Codec *tokens.Codec
}

func NewGuard(codec *tokens.Codec) *Guard {
	return &Guard{Codec: codec}
}

func (g *Guard) Authenticate(accessToken string, allowed RolePredicate) (Identity, error) {
	claims, err := g.Codec.VerifyAccess(accessToken)
	if err != nil {
		return Identity{}, err
	}

	if !allowed(claims.Role) {
		return Identity{}, ErrForbidden
	}

	return Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
