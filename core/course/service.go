package course

import (
	"context"
	"errors"

	"github.com/apper-canvas/studyflow-band-boost/core"
)

var (
	// errors
	ErrNotFound   = errors.New("course not found")
	ErrCodeExists = errors.New("a course with this code already exists")
)

type (
	Repository interface {
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		// CreateCourse returns ErrCodeExists when another course already
		// uses the code (codes compare case-insensitively).
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		// UpdateCourse overlays the provided fields on the stored record.
		// Like CreateCourse it returns ErrCodeExists on a code conflict.
		UpdateCourse(ctx context.Context, id int, data UpdateCourse) (Course, error)
		// DeleteCoursesByID is idempotent; unknown ids are not an error.
		DeleteCoursesByID(ctx context.Context, ids ...int) error
	}

	ServiceInterface interface {
		QueryAll(ctx context.Context) ([]Course, error)
		GetByID(ctx context.Context, id int) (Course, error)
		Create(ctx context.Context, nc NewCourse) (Course, error)
		Update(ctx context.Context, id int, uc UpdateCourse) (Course, error)
		Delete(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	crs := Course{
		Code:            nc.Code,
		Color:           nc.Color,
		TargetGrade:     nc.TargetGrade,
		GradeCategories: nc.GradeCategories,
	}
	if crs.GradeCategories == nil {
		crs.GradeCategories = []GradeCategory{}
	}
	crs, err := svc.repo.CreateCourse(ctx, crs)
	if err != nil {
		return Course{}, codeConflict(err)
	}
	return crs, nil
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	if uc.IsEmpty() {
		return svc.repo.GetCourseByID(ctx, id)
	}
	crs, err := svc.repo.UpdateCourse(ctx, id, uc)
	if err != nil {
		return Course{}, codeConflict(err)
	}
	return crs, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteCoursesByID(ctx, ids...)
}

// codeConflict converts the uniqueness sentinel into a field-level validation
// error so the API layer reports it against the offending field.
func codeConflict(err error) error {
	if err == ErrCodeExists {
		return core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
	}
	return err
}
