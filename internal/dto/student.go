package dto

import "github.com/noah-isme/classroom-portal/internal/models"

// CreateStudentRequest is the insertion schema for students.
type CreateStudentRequest struct {
	Name       string  `json:"name" validate:"required,max=120"`
	SeatNumber int     `json:"seatNumber" validate:"required,min=1"`
	PhotoURL   *string `json:"photoUrl" validate:"omitempty,max=2048"`
	Hobbies    *string `json:"hobbies" validate:"omitempty,max=1000"`
}

// UpdateStudentRequest is the partial update schema; absent fields are left untouched.
type UpdateStudentRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=120"`
	SeatNumber *int    `json:"seatNumber" validate:"omitempty,min=1"`
	PhotoURL   *string `json:"photoUrl" validate:"omitempty,max=2048"`
	Hobbies    *string `json:"hobbies" validate:"omitempty,max=1000"`
}

// Patch converts the request into a storage patch.
func (r UpdateStudentRequest) Patch() models.StudentPatch {
	return models.StudentPatch{
		Name:       r.Name,
		SeatNumber: r.SeatNumber,
		PhotoURL:   r.PhotoURL,
		Hobbies:    r.Hobbies,
	}
}
