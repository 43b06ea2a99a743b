package assignment

import (
	"context"
	"errors"
)

var (
	// errors
	ErrNotFound = errors.New("assignment not found")
)

type (
	Repository interface {
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		// FilterAssignments applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Assignment.Title.
		FilterAssignments(ctx context.Context, filter QueryFilter) ([]Assignment, error)
		CreateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
		// UpdateAssignment overlays the provided fields on the stored record.
		UpdateAssignment(ctx context.Context, id int, data UpdateAssignment) (Assignment, error)
		// DeleteAssignmentsByID is idempotent; unknown ids are not an error.
		DeleteAssignmentsByID(ctx context.Context, ids ...int) error
	}

	ServiceInterface interface {
		QueryAll(ctx context.Context) ([]Assignment, error)
		GetByID(ctx context.Context, id int) (Assignment, error)
		Filter(ctx context.Context, filter QueryFilter) ([]Assignment, error)
		Create(ctx context.Context, na NewAssignment) (Assignment, error)
		Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error)
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

func (svc *Service) QueryAll(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAllAssignments(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Assignment, error) {
	if filter.IsEmpty() {
		return svc.repo.QueryAllAssignments(ctx)
	}
	return svc.repo.FilterAssignments(ctx, filter)
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	asg := Assignment{
		CourseID:  na.CourseID,
		Title:     na.Title,
		Category:  na.Category,
		Completed: na.Completed,
		Grade:     na.Grade,
	}
	return svc.repo.CreateAssignment(ctx, asg)
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	if ua.IsEmpty() {
		return svc.repo.GetAssignmentByID(ctx, id)
	}
	return svc.repo.UpdateAssignment(ctx, id, ua)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteAssignmentsByID(ctx, ids...)
}
