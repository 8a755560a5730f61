package types

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}

// User is a dashboard account. PasswordHash holds a bcrypt hash; the plain
// password never reaches the store.
type User struct {
	ID           string `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Role         Role   `db:"role" json:"role"`
	PasswordHash string `db:"password" json:"-"`
}
