package domain

// Role роль пользователя, передаваемая gateway или JWT
type Role string

const (
	RoleClient      Role = "client"
	RoleResponsable Role = "responsable"
	RoleTechnician  Role = "technician"
)

// IsValid проверяет, что роль входит в закрытый список
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleResponsable, RoleTechnician:
		return true
	default:
		return false
	}
}

// Actor пользователь, выполняющий операцию
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsResponsable() bool {
	return a.Role == RoleResponsable
}
