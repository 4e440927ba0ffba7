package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-portal/internal/models"
)

const studentColumns = `id, name, seat_number, photo_url, hobbies, created_at, updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students ordered by seat.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY seat_number ASC`
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// FindBySeat fetches the student occupying a seat.
func (r *StudentRepository) FindBySeat(ctx context.Context, seat int) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE seat_number = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, seat); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student by seat: %w", err)
	}
	return &student, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, name, seat_number, photo_url, hobbies, created_at, updated_at)
        VALUES (:id, :name, :seat_number, :photo_url, :hobbies, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		if mapped := mapWriteError(err); mapped == ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of patch and returns the stored row.
func (r *StudentRepository) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.SeatNumber != nil {
		set("seat_number", *patch.SeatNumber)
	}
	if patch.PhotoURL != nil {
		set("photo_url", *patch.PhotoURL)
	}
	if patch.Hobbies != nil {
		set("hobbies", *patch.Hobbies)
	}
	set("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE students SET %s WHERE id = $%d RETURNING %s`, strings.Join(sets, ", "), len(args), studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if mapped := mapWriteError(err); mapped == ErrDuplicate {
			return nil, mapped
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return &student, nil
}

// Delete removes a student. It returns sql.ErrNoRows when nothing matched.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
