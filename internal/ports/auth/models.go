package auth

// Role es el rol de la sesión. Es la única señal de autorización
// que consultan los endpoints.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// Claims representa la información extraída del token de sesión.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

func (c Claims) Authenticated() bool {
	return c.UserID != ""
}
