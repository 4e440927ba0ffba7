package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindBySeat(ctx context.Context, seat int) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every student ordered by seat number.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := cachedList(ctx, s.cache, CacheKeyStudents, s.repo.List)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch students")
	}
	return students, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch student")
	}
	return student, nil
}

// GetBySeat returns the occupant of a seat. Seats outside the layout are simply unoccupied.
func (s *StudentService) GetBySeat(ctx context.Context, seat int) (*models.Student, error) {
	student, err := s.repo.FindBySeat(ctx, seat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found for this seat")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch student")
	}
	return student, nil
}

// Create places a new student on a free seat.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest, actor *models.Principal) (*models.Student, error) {
	if !actor.Admin() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Invalid student data")
	}
	student := &models.Student{
		Name:       req.Name,
		SeatNumber: req.SeatNumber,
		PhotoURL:   req.PhotoURL,
		Hobbies:    req.Hobbies,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid student data")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to create student")
	}
	s.cache.Invalidate(ctx, CacheKeyStudents)
	s.logger.Info("student created", zap.String("student_id", student.ID), zap.Int("seat", student.SeatNumber))
	return student, nil
}

// Update applies a partial update. Absent fields keep their stored values.
// Store failures, including an unknown id or a taken seat, surface as 500.
func (s *StudentService) Update(ctx context.Context, id string, req dto.UpdateStudentRequest, actor *models.Principal) (*models.Student, error) {
	if !actor.Admin() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Invalid student data")
	}
	student, err := s.repo.Update(ctx, id, req.Patch())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to update student")
	}
	s.cache.Invalidate(ctx, CacheKeyStudents)
	return student, nil
}

// Delete removes a student and frees the seat.
func (s *StudentService) Delete(ctx context.Context, id string, actor *models.Principal) error {
	if !actor.Admin() {
		return appErrors.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to delete student")
	}
	s.cache.Invalidate(ctx, CacheKeyStudents)
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}
