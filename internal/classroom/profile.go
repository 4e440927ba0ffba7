package classroom

import (
	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
)

const noHobbies = "No hobby information yet"

// ProfileView is the read-only student profile.
type ProfileView struct {
	Student  models.Student
	Editable bool
}

// NewProfileView builds the profile shown after a seat click.
func NewProfileView(student models.Student, admin bool) ProfileView {
	return ProfileView{Student: student, Editable: admin}
}

// HasPhoto reports whether a photo URL is set.
func (p ProfileView) HasPhoto() bool {
	return p.Student.PhotoURL != nil && *p.Student.PhotoURL != ""
}

// Hobbies returns the hobbies text or a placeholder.
func (p ProfileView) Hobbies() string {
	if p.Student.Hobbies == nil || *p.Student.Hobbies == "" {
		return noHobbies
	}
	return *p.Student.Hobbies
}

// EditBuffer holds unsaved profile edits bound to one student.
type EditBuffer struct {
	original models.Student
	Name     string
	PhotoURL string
	Hobbies  string
}

// Edit opens an edit buffer seeded from the student.
func (p ProfileView) Edit() *EditBuffer {
	return NewEditBuffer(p.Student)
}

// NewEditBuffer seeds a buffer from the stored student.
func NewEditBuffer(student models.Student) *EditBuffer {
	return &EditBuffer{
		original: student,
		Name:     student.Name,
		PhotoURL: deref(student.PhotoURL),
		Hobbies:  deref(student.Hobbies),
	}
}

// StudentID is the id the buffer is bound to.
func (b *EditBuffer) StudentID() string {
	return b.original.ID
}

// Dirty reports whether any field differs from the stored student.
func (b *EditBuffer) Dirty() bool {
	patch := b.Patch()
	return patch.Name != nil || patch.PhotoURL != nil || patch.Hobbies != nil
}

// Patch returns a partial update carrying only changed fields.
func (b *EditBuffer) Patch() dto.UpdateStudentRequest {
	var req dto.UpdateStudentRequest
	if b.Name != b.original.Name {
		name := b.Name
		req.Name = &name
	}
	if b.PhotoURL != deref(b.original.PhotoURL) {
		photo := b.PhotoURL
		req.PhotoURL = &photo
	}
	if b.Hobbies != deref(b.original.Hobbies) {
		hobbies := b.Hobbies
		req.Hobbies = &hobbies
	}
	return req
}

// Reset discards edits.
func (b *EditBuffer) Reset() {
	*b = *NewEditBuffer(b.original)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
