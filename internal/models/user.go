package models

// User is a registered person and their workout log.
// Workouts are ordered by the time they were logged.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Age      int       `json:"age" validate:"gt=0"`
	Weight   float64   `json:"weight" validate:"gt=0,finite"`
	Height   float64   `json:"height" validate:"gt=0,finite"`
	Workouts []Workout `json:"workouts"`
}

// Clone returns a copy of u that shares no workout storage with it.
func (u User) Clone() User {
	c := u
	c.Workouts = make([]Workout, len(u.Workouts))
	copy(c.Workouts, u.Workouts)
	return c
}

// UserPatch is a partial update for a User. Nil fields are left untouched.
// ID and Workouts are not patchable.
type UserPatch struct {
	Name   *string  `json:"name,omitempty"`
	Age    *int     `json:"age,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Age == nil && p.Weight == nil && p.Height == nil
}

// Apply overwrites the fields of u that are present in p.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Weight != nil {
		u.Weight = *p.Weight
	}
	if p.Height != nil {
		u.Height = *p.Height
	}
}
