package user

type Role string

const (
	RoleCustomer      Role = "Customer"
	RoleEmployee      Role = "Employee"
	RoleAdministrator Role = "Administrator"
)

var Roles = []Role{RoleCustomer, RoleEmployee, RoleAdministrator}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdministrator:
		return true
	}
	return false
}

// ParseRole accepts the canonical role names; an empty string means Customer.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleCustomer, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

type User struct {
	ID           int64  `db:"id" json:"id"`
	Login        string `db:"login" json:"login"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"role" json:"role"`
}

// Identity is what the presentation layer carries forward after login.
type Identity struct {
	UserID int64  `json:"user_id"`
	Login  string `json:"login"`
	Role   Role   `json:"role"`
}
