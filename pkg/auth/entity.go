package auth

import (
	"strings"
	"time"
)

// Role is the closed set of user kinds. Every decision that depends on the
// role switches over it exhaustively.
type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

var Roles = []Role{RoleStudent, RoleRecruiter}

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleRecruiter:
		return RoleRecruiter, true
	}
	return "", false
}

// Dashboard is the navbar link shown to a signed-in user.
type Dashboard struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

func (r Role) Dashboard() Dashboard {
	switch r {
	case RoleRecruiter:
		return Dashboard{Path: "/my-job", Label: "Recruiter Dashboard"}
	case RoleStudent:
		return Dashboard{Path: "/my-applications", Label: "Student Dashboard"}
	}
	return Dashboard{Path: "/search", Label: "Jobs"}
}

// Pages lists the role-restricted pages the role may open.
func (r Role) Pages() []string {
	switch r {
	case RoleRecruiter:
		return []string{"/post-job", "/my-job"}
	case RoleStudent:
		return []string{"/my-applications", "/resume"}
	}
	return nil
}

// Session - явный объект сессии вместо localStorage: токен бэкенда и профиль.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
