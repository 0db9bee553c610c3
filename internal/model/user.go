package model

// Roles recognised by the application.  The database defaults new users
// to RolePassenger when no role is supplied.
const (
	RoleAdmin     = "ADMIN"
	RolePassenger = "PASSENGER"
)

// AppUser represents an application user as stored in the `AppUsers`
// table.  The Password field holds the bcrypt hash, never the plain
// credential, and is excluded from every JSON response.  Email is unique
// and serves as the external lookup key.
//
// Fields:
//
//	ID       – primary key identifier.
//	Name     – display name.
//	Email    – unique email address.
//	Password – bcrypt password hash (never serialized).
//	Role     – ADMIN or PASSENGER.
type AppUser struct {
	ID       int64  `json:"id"`    // AppUsers.id
	Name     string `json:"name"`  // AppUsers.name
	Email    string `json:"email"` // AppUsers.email
	Password string `json:"-"`     // AppUsers.password (bcrypt hash)
	Role     string `json:"role"`  // AppUsers.role
}
