package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// GridCell is one box of a grid drawing.
type GridCell struct {
	Heading string
	Body    string
	Muted   bool
}

// Grid is a fixed-column layout drawn as boxes, e.g. a seating chart.
type Grid struct {
	Title   string
	Banner  string
	Columns int
	Cells   []GridCell
	Footer  string
}

// PDFExporter renders tables and grids into A4 PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderTable draws a titled table.
func (e *PDFExporter) RenderTable(table Table) ([]byte, error) {
	if len(table.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := newDocument("P")
	writeTitle(pdf, table.Title)

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(table.Headers))
	for _, header := range table.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range table.Rows {
		for i := range table.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return output(pdf)
}

// RenderGrid draws cells left to right, wrapping every Columns cells.
func (e *PDFExporter) RenderGrid(grid Grid) ([]byte, error) {
	if grid.Columns <= 0 {
		return nil, fmt.Errorf("grid requires a positive column count")
	}
	pdf := newDocument("L")
	writeTitle(pdf, grid.Title)

	const gap = 3.0
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right
	cellW := (usable - gap*float64(grid.Columns-1)) / float64(grid.Columns)
	cellH := 20.0

	if grid.Banner != "" {
		bannerW := cellW * 2
		pdf.SetX(left + (usable-bannerW)/2)
		pdf.SetFillColor(16, 185, 129)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(bannerW, 10, grid.Banner, "1", 1, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	top := pdf.GetY()
	for i, cell := range grid.Cells {
		col := i % grid.Columns
		row := i / grid.Columns
		x := left + float64(col)*(cellW+gap)
		y := top + float64(row)*(cellH+gap)

		if cell.Muted {
			pdf.SetFillColor(241, 245, 249)
		} else {
			pdf.SetFillColor(199, 210, 254)
		}
		pdf.Rect(x, y, cellW, cellH, "FD")

		pdf.SetXY(x, y+2)
		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(cellW, 5, cell.Heading, "", 2, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(cellW, 6, pdf.UnicodeTranslatorFromDescriptor("")(cell.Body), "", 0, "C", false, 0, "")
	}

	if grid.Footer != "" {
		rows := (len(grid.Cells) + grid.Columns - 1) / grid.Columns
		pdf.SetXY(left, top+float64(rows)*(cellH+gap)+4)
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(usable, 6, grid.Footer, "", 1, "C", false, 0, "")
	}
	return output(pdf)
}

func newDocument(orientation string) *gofpdf.Fpdf {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	return pdf
}

func writeTitle(pdf *gofpdf.Fpdf, title string) {
	if title == "" {
		return
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
