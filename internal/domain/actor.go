package domain

// Role represents the role of the acting user, as asserted by the API gateway
type Role string

const (
	RoleResident Role = "resident"
	RoleManager  Role = "manager"
	RoleAuditor  Role = "auditor" // привилегированный, но только для чтения
)

// IsValid returns true if the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleResident || r == RoleManager || r == RoleAuditor
}

// Actor represents the authenticated caller of a request
type Actor struct {
	UserID     int64
	UnitNumber int // 0 для ролей без привязки к квартире
	Role       Role
}

// Permissions is the capability set of an actor, derived once per request
type Permissions struct {
	CanMutateAny bool // изменять и отменять любые бронирования, управлять блокировками
	CanViewAll   bool // просматривать чужие бронирования и выгрузки
	ReadOnly     bool // запрещены любые мутации, включая собственные
}

// PermissionsFor derives the capability set from the actor's role.
// Роли проверяются один раз на запрос; сервисы работают только с Permissions.
func PermissionsFor(role Role) Permissions {
	switch role {
	case RoleManager:
		return Permissions{CanMutateAny: true, CanViewAll: true}
	case RoleAuditor:
		return Permissions{CanViewAll: true, ReadOnly: true}
	default:
		return Permissions{}
	}
}

// Permissions returns the capability set of the actor
func (a Actor) Permissions() Permissions {
	return PermissionsFor(a.Role)
}

// OwnsUnit returns true if the actor is the resident owner of the given unit
func (a Actor) OwnsUnit(unitNumber int) bool {
	return a.Role == RoleResident && a.UnitNumber == unitNumber
}
