package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/classroom"
	"github.com/noah-isme/classroom-portal/internal/models"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type studentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	RenderGrid(grid export.Grid) ([]byte, error)
}

// ExportFile is a rendered document ready to be sent.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the seating chart.
type ExportService struct {
	students studentLister
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(students studentLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{students: students, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// SeatingChart renders all 33 seats in the requested format.
func (s *ExportService) SeatingChart(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	seats := classroom.BuildSeats(students)
	stamp := s.now().UTC().Format("20060102")

	switch format {
	case ExportFormatPDF:
		data, err := s.pdf.RenderGrid(seatingGrid(seats))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render seating chart")
		}
		return &ExportFile{Filename: fmt.Sprintf("seating-%s.pdf", stamp), ContentType: "application/pdf", Data: data}, nil
	default:
		data, err := s.csv.Render(seatingTable(seats))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render seating chart")
		}
		return &ExportFile{Filename: fmt.Sprintf("seating-%s.csv", stamp), ContentType: "text/csv", Data: data}, nil
	}
}

func seatingTable(seats [models.ClassroomSeats]classroom.Seat) export.Table {
	table := export.Table{
		Title:   "Seating chart",
		Headers: []string{"seat", "row", "column", "name", "hobbies"},
		Rows:    make([][]string, 0, len(seats)),
	}
	for i, seat := range seats {
		row := []string{
			strconv.Itoa(seat.Number),
			strconv.Itoa(i/classroom.GridColumns + 1),
			strconv.Itoa(i%classroom.GridColumns + 1),
		}
		if seat.Occupied() {
			hobbies := ""
			if seat.Student.Hobbies != nil {
				hobbies = *seat.Student.Hobbies
			}
			row = append(row, seat.Student.Name, hobbies)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func seatingGrid(seats [models.ClassroomSeats]classroom.Seat) export.Grid {
	cells := make([]export.GridCell, len(seats))
	for i, seat := range seats {
		cell := export.GridCell{Heading: fmt.Sprintf("Seat %d", seat.Number), Muted: !seat.Occupied()}
		if seat.Occupied() {
			cell.Body = seat.Student.Name
		}
		cells[i] = cell
	}
	return export.Grid{
		Title:   "Seating chart",
		Banner:  "Teacher's desk",
		Columns: classroom.GridColumns,
		Cells:   cells,
		Footer:  fmt.Sprintf("Total: %d seats, %d occupied", len(seats), classroom.Occupancy(seats)),
	}
}
