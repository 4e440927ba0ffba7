package classroom

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/noah-isme/classroom-portal/internal/models"
)

const cellWidth = 12

// RenderSeats draws the layout as a text grid with the teacher's desk on top.
// Empty seats are shown in brackets because they cannot be selected.
func RenderSeats(w io.Writer, seats [models.ClassroomSeats]Seat) error {
	width := GridColumns * (cellWidth + 1)
	desk := "Teacher's desk"
	pad := (width - len(desk)) / 2
	if _, err := fmt.Fprintf(w, "%s%s\n\n", strings.Repeat(" ", pad), desk); err != nil {
		return err
	}
	for _, row := range Rows(seats) {
		cells := make([]string, len(row))
		for i, seat := range row {
			label := fmt.Sprintf("%d:%s", seat.Number, seat.Label())
			if !seat.Clickable() {
				label = fmt.Sprintf("[%d]", seat.Number)
			}
			cells[i] = fit(label, cellWidth)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d seats, %d occupied\n", len(seats), Occupancy(seats))
	return err
}

// RenderProfile prints a student profile.
func RenderProfile(w io.Writer, p ProfileView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", p.Student.Name)
	fmt.Fprintf(tw, "Seat\t%d\n", p.Student.SeatNumber)
	if p.HasPhoto() {
		fmt.Fprintf(tw, "Photo\t%s\n", *p.Student.PhotoURL)
	}
	fmt.Fprintf(tw, "Hobbies\t%s\n", p.Hobbies())
	if p.Editable {
		fmt.Fprintf(tw, "ID\t%s\n", p.Student.ID)
	}
	return tw.Flush()
}

// RenderGallery lists gallery cards in server order.
func RenderGallery(w io.Writer, g GalleryGrid) error {
	if g.Empty() {
		_, err := fmt.Fprintln(w, "No media yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := "TAG\tTITLE\tURL\tDATE"
	if g.Admin {
		header += "\tID"
	}
	fmt.Fprintln(tw, header)
	for _, card := range g.Cards {
		line := fmt.Sprintf("%s\t%s\t%s\t%s", card.Tag(), card.Item.Title, card.Item.MediaURL, card.Date())
		if card.Deletable {
			line += "\t" + card.Item.ID
		}
		fmt.Fprintln(tw, line)
		if caption := card.Caption(); caption != "" {
			fmt.Fprintf(tw, "\t  %s\t\t\n", caption)
		}
	}
	return tw.Flush()
}

// RenderSlides lists slides by order. The slides tab is read-only.
func RenderSlides(w io.Writer, slides []models.Slide) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tTYPE\tACTIVE\tTITLE")
	for _, slide := range slides {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%s\n", slide.Order, slide.Type, slide.IsActive, slide.Title)
	}
	return tw.Flush()
}

// RenderDashboard prints the tab bar and the active tab's content.
func RenderDashboard(w io.Writer, d *Dashboard, students []models.Student, gallery GalleryGrid, slides []models.Slide) error {
	tabs := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if tab == d.Active() {
			tabs[i] = "[" + string(tab) + "]"
		} else {
			tabs[i] = " " + string(tab) + " "
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", strings.Join(tabs, " ")); err != nil {
		return err
	}
	switch d.Active() {
	case TabGallery:
		return RenderGallery(w, gallery)
	case TabSlides:
		return RenderSlides(w, slides)
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SEAT\tNAME\tID")
		for _, s := range students {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", s.SeatNumber, s.Name, s.ID)
		}
		return tw.Flush()
	}
}

func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "~"
	}
	return s + strings.Repeat(" ", width-len(r))
}
