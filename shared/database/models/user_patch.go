package models

import "time"

// UserPatch describes a partial profile update. Only fields that are set
// are written to the user.
type UserPatch struct {
	FirstName Optional[string] `json:"first_name" swaggertype:"string"`
	LastName  Optional[string] `json:"last_name" swaggertype:"string"`
	Email     Optional[string] `json:"email" swaggertype:"string"`
	Phone     Optional[string] `json:"phone" swaggertype:"string"`
	Bio       Optional[string] `json:"bio" swaggertype:"string"`
	Password  Optional[string] `json:"password" swaggertype:"string"`
}

// IsEmpty reports whether the patch carries no fields at all
func (p UserPatch) IsEmpty() bool {
	return !p.FirstName.IsSet() && !p.LastName.IsSet() && !p.Email.IsSet() &&
		!p.Phone.IsSet() && !p.Bio.IsSet() && !p.Password.IsSet()
}

// Apply merges the profile fields of the patch into user and bumps UpdatedAt.
// Password is not applied here: it has to be hashed first and is written
// through hashedPassword, which is ignored when empty.
func (p UserPatch) Apply(user *User, hashedPassword string, now time.Time) {
	if v, ok := p.FirstName.Get(); ok {
		user.FirstName = v
	}
	if v, ok := p.LastName.Get(); ok {
		user.LastName = v
	}
	if v, ok := p.Email.Get(); ok {
		user.Email = v
	}
	if v, ok := p.Phone.Get(); ok {
		user.Phone = v
	}
	if v, ok := p.Bio.Get(); ok {
		user.Bio = v
	}
	if hashedPassword != "" {
		user.HashedPassword = hashedPassword
	}
	user.UpdatedAt = now
}
