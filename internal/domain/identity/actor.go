package identity

type Role string

const (
	RoleMaster      Role = "master"
	RolePrestador   Role = "prestador"
	RoleContratante Role = "contratante"
)

// ParseRole aceita apenas os três tipos de usuário conhecidos.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMaster, RolePrestador, RoleContratante:
		return Role(s), true
	}
	return "", false
}

// Actor é o usuário autenticado que dispara uma operação.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) IsPrestador() bool { return a.Role == RolePrestador }

func (a Actor) IsMaster() bool { return a.Role == RoleMaster }
