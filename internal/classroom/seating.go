package classroom

import (
	"strconv"
	"strings"

	"github.com/noah-isme/classroom-portal/internal/models"
)

// GridColumns is the number of seats per row in the classroom layout.
const GridColumns = 6

// Seat is one slot of the classroom layout.
type Seat struct {
	Number  int
	Student *models.Student
}

// Occupied reports whether a student sits here.
func (s Seat) Occupied() bool {
	return s.Student != nil
}

// Clickable reports whether selecting the seat opens a profile.
func (s Seat) Clickable() bool {
	return s.Occupied()
}

// Label is the short caption shown on the seat: the occupant's first name or the seat number.
func (s Seat) Label() string {
	if s.Student == nil {
		return "Seat " + strconv.Itoa(s.Number)
	}
	fields := strings.Fields(s.Student.Name)
	if len(fields) == 0 {
		return s.Student.Name
	}
	return fields[0]
}

// BuildSeats maps students onto the fixed layout. Slot i holds seat i+1.
// When two students claim the same seat the first one in input order wins.
func BuildSeats(students []models.Student) [models.ClassroomSeats]Seat {
	var seats [models.ClassroomSeats]Seat
	for i := range seats {
		seats[i].Number = i + 1
		for j := range students {
			if students[j].SeatNumber == i+1 {
				student := students[j]
				seats[i].Student = &student
				break
			}
		}
	}
	return seats
}

// Rows splits the layout into display rows of GridColumns seats; the last row is short.
func Rows(seats [models.ClassroomSeats]Seat) [][]Seat {
	rows := make([][]Seat, 0, (len(seats)+GridColumns-1)/GridColumns)
	for start := 0; start < len(seats); start += GridColumns {
		end := start + GridColumns
		if end > len(seats) {
			end = len(seats)
		}
		rows = append(rows, seats[start:end])
	}
	return rows
}

// Occupancy counts occupied seats.
func Occupancy(seats [models.ClassroomSeats]Seat) int {
	n := 0
	for _, seat := range seats {
		if seat.Occupied() {
			n++
		}
	}
	return n
}

// Select resolves a seat click into the student id to open, if any.
func Select(seats [models.ClassroomSeats]Seat, number int) (string, bool) {
	if number < 1 || number > len(seats) {
		return "", false
	}
	seat := seats[number-1]
	if !seat.Clickable() {
		return "", false
	}
	return seat.Student.ID, true
}
