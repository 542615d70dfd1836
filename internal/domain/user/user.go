package user

import "time"

// User is an account row. Soft deletion is modelled with DeletedAt;
// a deleted user must be treated as non-existent by every flow.
type User struct {
	ID        int64
	Email     string
	Name      string
	Role      Role
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the user is usable (not soft-deleted).
func (u *User) Active() bool {
	return u != nil && u.DeletedAt == nil
}
