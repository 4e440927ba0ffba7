package models

import "time"

// ClassroomSeats is the number of seats in the classroom layout.
const ClassroomSeats = 33

// Student occupies exactly one seat in the classroom.
type Student struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	SeatNumber int       `db:"seat_number" json:"seatNumber"`
	PhotoURL   *string   `db:"photo_url" json:"photoUrl"`
	Hobbies    *string   `db:"hobbies" json:"hobbies"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// StudentPatch carries the fields of a partial update; nil means unchanged.
type StudentPatch struct {
	Name       *string
	SeatNumber *int
	PhotoURL   *string
	Hobbies    *string
}

// Empty reports whether the patch changes nothing.
func (p StudentPatch) Empty() bool {
	return p.Name == nil && p.SeatNumber == nil && p.PhotoURL == nil && p.Hobbies == nil
}
