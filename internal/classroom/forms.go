package classroom

import (
	"errors"
	"strings"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
)

var (
	ErrNameRequired   = errors.New("name is required")
	ErrSeatOutOfRange = errors.New("seat number must be between 1 and 33")
	ErrTitleRequired  = errors.New("title is required")
	ErrNoMediaSource  = errors.New("provide a media URL or choose a file")
)

// StudentForm backs both the add and the edit student dialogs.
type StudentForm struct {
	editing    *models.Student
	Name       string
	SeatNumber int
	PhotoURL   string
	Hobbies    string
}

// NewStudentForm returns an empty add form with seat 1 preselected.
func NewStudentForm() *StudentForm {
	return &StudentForm{SeatNumber: 1}
}

// EditStudentForm returns a form seeded from an existing student.
func EditStudentForm(student models.Student) *StudentForm {
	s := student
	return &StudentForm{
		editing:    &s,
		Name:       student.Name,
		SeatNumber: student.SeatNumber,
		PhotoURL:   deref(student.PhotoURL),
		Hobbies:    deref(student.Hobbies),
	}
}

// Editing returns the id of the student being edited, or empty for a new student.
func (f *StudentForm) Editing() string {
	if f.editing == nil {
		return ""
	}
	return f.editing.ID
}

// Validate checks the form before submission.
func (f *StudentForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if f.SeatNumber < 1 || f.SeatNumber > models.ClassroomSeats {
		return ErrSeatOutOfRange
	}
	return nil
}

// CreateRequest builds the insert payload.
func (f *StudentForm) CreateRequest() (dto.CreateStudentRequest, error) {
	if err := f.Validate(); err != nil {
		return dto.CreateStudentRequest{}, err
	}
	return dto.CreateStudentRequest{
		Name:       strings.TrimSpace(f.Name),
		SeatNumber: f.SeatNumber,
		PhotoURL:   optional(f.PhotoURL),
		Hobbies:    optional(f.Hobbies),
	}, nil
}

// UpdateRequest builds the full update payload sent by the edit dialog.
func (f *StudentForm) UpdateRequest() (dto.UpdateStudentRequest, error) {
	if err := f.Validate(); err != nil {
		return dto.UpdateStudentRequest{}, err
	}
	name := strings.TrimSpace(f.Name)
	seat := f.SeatNumber
	photo := f.PhotoURL
	hobbies := f.Hobbies
	return dto.UpdateStudentRequest{Name: &name, SeatNumber: &seat, PhotoURL: &photo, Hobbies: &hobbies}, nil
}

// MediaSource is where a new gallery item comes from. It is either a URL or an uploaded file.
type MediaSource interface {
	isMediaSource()
}

// ByURL references media hosted elsewhere; the media type is chosen by the user.
type ByURL struct {
	URL       string
	MediaType models.MediaType
}

// ByUpload sends a local file; the server derives the media type.
type ByUpload struct {
	Path string
}

func (ByURL) isMediaSource()    {}
func (ByUpload) isMediaSource() {}

// GalleryForm backs the add media dialog.
type GalleryForm struct {
	Title       string
	Description string
	Source      MediaSource
}

// UseURL selects URL mode, discarding any chosen file.
func (f *GalleryForm) UseURL(url string, mediaType models.MediaType) {
	f.Source = ByURL{URL: url, MediaType: mediaType}
}

// UseFile selects upload mode, discarding any entered URL.
func (f *GalleryForm) UseFile(path string) {
	f.Source = ByUpload{Path: path}
}

// Validate checks that a title and exactly one usable source are present.
func (f *GalleryForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	switch src := f.Source.(type) {
	case ByURL:
		if strings.TrimSpace(src.URL) == "" {
			return ErrNoMediaSource
		}
	case ByUpload:
		if strings.TrimSpace(src.Path) == "" {
			return ErrNoMediaSource
		}
	default:
		return ErrNoMediaSource
	}
	return nil
}

// URLRequest builds the JSON payload for URL mode.
func (f *GalleryForm) URLRequest() (dto.CreateGalleryItemRequest, bool) {
	src, ok := f.Source.(ByURL)
	if !ok {
		return dto.CreateGalleryItemRequest{}, false
	}
	mediaType := src.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeImage
	}
	return dto.CreateGalleryItemRequest{
		Title:       strings.TrimSpace(f.Title),
		MediaURL:    strings.TrimSpace(src.URL),
		MediaType:   string(mediaType),
		Description: optional(f.Description),
	}, true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
