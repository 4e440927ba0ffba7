package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/models"
)

type studentListStub []models.Student

func (s studentListStub) List(ctx context.Context) ([]models.Student, error) {
	return s, nil
}

func newExportServiceForTest(students ...models.Student) *ExportService {
	svc := NewExportService(studentListStub(students), nil, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 7, 15, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestSeatingChartCSV(t *testing.T) {
	hobbies := "chess"
	svc := newExportServiceForTest(models.Student{ID: "a", Name: "Ana", SeatNumber: 7, Hobbies: &hobbies})

	file, err := svc.SeatingChart(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "seating-20240715.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 34)
	assert.Equal(t, []string{"seat", "row", "column", "name", "hobbies"}, records[0])
	assert.Equal(t, []string{"7", "2", "1", "Ana", "chess"}, records[7])
	assert.Equal(t, []string{"33", "6", "3", "", ""}, records[33])
}

func TestSeatingChartPDF(t *testing.T) {
	svc := newExportServiceForTest(models.Student{ID: "a", Name: "Ana", SeatNumber: 1})

	file, err := svc.SeatingChart(context.Background(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestSeatingChartUnknownFormat(t *testing.T) {
	_, err := newExportServiceForTest().SeatingChart(context.Background(), "xlsx")
	assert.Equal(t, 400, statusOf(t, err))
}
