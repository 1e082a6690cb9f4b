package domain

// Roles carried in the JWT and checked by the admin middleware.
const (
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

type UserAuth struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	Status       string
}
