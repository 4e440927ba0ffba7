package classroom

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-portal/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildSeatsAlwaysHas33Slots(t *testing.T) {
	seats := BuildSeats([]models.Student{
		{ID: "a", Name: "Ana Putri", SeatNumber: 5},
		{ID: "b", Name: "Budi", SeatNumber: 33},
	})

	require.Len(t, seats, 33)
	for i, seat := range seats {
		assert.Equal(t, i+1, seat.Number)
		switch seat.Number {
		case 5:
			assert.True(t, seat.Clickable())
			assert.Equal(t, "Ana", seat.Label())
		case 33:
			assert.True(t, seat.Clickable())
		default:
			assert.False(t, seat.Clickable(), "seat %d", seat.Number)
			assert.Equal(t, "Seat "+strconv.Itoa(seat.Number), seat.Label())
		}
	}
	assert.Equal(t, 2, Occupancy(seats))
}

func TestBuildSeatsIgnoresOutOfRange(t *testing.T) {
	seats := BuildSeats([]models.Student{{ID: "x", Name: "Ghost", SeatNumber: 40}})
	assert.Equal(t, 0, Occupancy(seats))
}

func TestSelect(t *testing.T) {
	seats := BuildSeats([]models.Student{{ID: "a", Name: "Ana", SeatNumber: 5}})

	id, ok := Select(seats, 5)
	assert.True(t, ok)
	assert.Equal(t, "a", id)

	_, ok = Select(seats, 6)
	assert.False(t, ok)
	_, ok = Select(seats, 0)
	assert.False(t, ok)
}

func TestRowsLayout(t *testing.T) {
	rows := Rows(BuildSeats(nil))
	require.Len(t, rows, 6)
	assert.Len(t, rows[0], GridColumns)
	assert.Len(t, rows[5], 3)
	assert.Equal(t, 33, rows[5][2].Number)
}

func TestGalleryCardTag(t *testing.T) {
	grid := BuildGallery([]models.GalleryItem{
		{ID: "1", Title: "Photo", MediaType: models.MediaTypeImage, CreatedAt: time.Now()},
		{ID: "2", Title: "Clip", MediaType: models.MediaTypeVideo, Description: strPtr("school play"), CreatedAt: time.Now()},
	}, false)

	assert.Equal(t, "img", grid.Cards[0].Tag())
	assert.Equal(t, "video", grid.Cards[1].Tag())
	assert.Equal(t, "school play", grid.Cards[1].Caption())
	assert.False(t, grid.Cards[0].Deletable)
	assert.False(t, grid.CanAdd())
	assert.Equal(t, "1", grid.Cards[0].Item.ID)
}

func TestEditBufferPatchOnlyChangedFields(t *testing.T) {
	student := models.Student{ID: "a", Name: "Ana", SeatNumber: 5, Hobbies: strPtr("chess")}
	buf := NewProfileView(student, true).Edit()
	assert.False(t, buf.Dirty())

	buf.Hobbies = "football"
	patch := buf.Patch()
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.PhotoURL)
	assert.Nil(t, patch.SeatNumber)
	require.NotNil(t, patch.Hobbies)
	assert.Equal(t, "football", *patch.Hobbies)
	assert.Equal(t, "a", buf.StudentID())

	buf.Reset()
	assert.False(t, buf.Dirty())
}

func TestProfileHobbiesPlaceholder(t *testing.T) {
	view := NewProfileView(models.Student{Name: "Ana"}, false)
	assert.Equal(t, noHobbies, view.Hobbies())
	assert.False(t, view.HasPhoto())
}

func TestStudentFormSeatRange(t *testing.T) {
	form := NewStudentForm()
	form.Name = "Ana"
	form.SeatNumber = 34
	_, err := form.CreateRequest()
	assert.ErrorIs(t, err, ErrSeatOutOfRange)

	form.SeatNumber = 33
	req, err := form.CreateRequest()
	require.NoError(t, err)
	assert.Equal(t, 33, req.SeatNumber)
	assert.Nil(t, req.PhotoURL)

	form.Name = "  "
	assert.ErrorIs(t, form.Validate(), ErrNameRequired)
}

func TestGalleryFormSourceIsExclusive(t *testing.T) {
	form := &GalleryForm{Title: "Trip"}
	assert.ErrorIs(t, form.Validate(), ErrNoMediaSource)

	form.UseFile("/tmp/photo.png")
	require.NoError(t, form.Validate())
	_, ok := form.URLRequest()
	assert.False(t, ok)

	form.UseURL("https://example.com/v.mp4", models.MediaTypeVideo)
	_, isUpload := form.Source.(ByUpload)
	assert.False(t, isUpload)
	req, ok := form.URLRequest()
	require.True(t, ok)
	assert.Equal(t, "video", req.MediaType)
}

func TestDashboardTabs(t *testing.T) {
	d := NewDashboard()
	assert.Equal(t, TabStudents, d.Active())
	require.NoError(t, d.Select(TabSlides))
	assert.Equal(t, TabSlides, d.Active())
	assert.Error(t, d.Select("settings"))
	assert.Equal(t, TabSlides, d.Active())
}

func TestRenderSeats(t *testing.T) {
	var buf bytes.Buffer
	seats := BuildSeats([]models.Student{{ID: "a", Name: "Ana", SeatNumber: 1}})
	require.NoError(t, RenderSeats(&buf, seats))

	out := buf.String()
	assert.Contains(t, out, "Teacher's desk")
	assert.Contains(t, out, "1:Ana")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "Total: 33 seats, 1 occupied")
}
