package user

type Role string

const (
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID       uint
	Username string
	Password string
	Role     Role
}
