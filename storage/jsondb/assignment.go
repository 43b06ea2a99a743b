package jsondb

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/apper-canvas/studyflow-band-boost/core/assignment"
	appfs "github.com/apper-canvas/studyflow-band-boost/fs"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
)

// SeedAssignments returns the bundled default assignment dataset.
func SeedAssignments() ([]assignment.Assignment, error) {
	data, err := appfs.FS.ReadFile(appfs.SeedAssignmentsPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading bundled assignments")
	}
	var assignments []assignment.Assignment
	if err = json.Unmarshal(data, &assignments); err != nil {
		return nil, errors.Wrap(err, "parsing bundled assignments")
	}
	return assignments, nil
}

type AssignmentRepository struct {
	slot    slot.Slot
	latency time.Duration
	mutex   sync.Mutex // serializes in-process read-modify-write cycles
}

var _ assignment.Repository = (*AssignmentRepository)(nil)

func NewAssignmentRepository(s slot.Slot, latency time.Duration) *AssignmentRepository {
	return &AssignmentRepository{slot: s, latency: latency}
}

func (repo *AssignmentRepository) load(ctx context.Context) ([]assignment.Assignment, error) {
	if err := delay(ctx, repo.latency); err != nil {
		return nil, err
	}

	data, err := repo.slot.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading assignments slot")
	}
	if data == nil {
		return SeedAssignments()
	}

	var assignments []assignment.Assignment
	if err = json.Unmarshal(data, &assignments); err != nil {
		return nil, errors.Wrap(err, "parsing stored assignments")
	}
	if assignments == nil {
		assignments = []assignment.Assignment{}
	}
	return assignments, nil
}

func (repo *AssignmentRepository) persist(ctx context.Context, assignments []assignment.Assignment) error {
	data, err := json.Marshal(assignments)
	if err != nil {
		return errors.Wrap(err, "encoding assignments")
	}
	if err = repo.slot.Write(ctx, data); err != nil {
		return errors.Wrap(err, "writing assignments slot")
	}
	return nil
}

func (repo *AssignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return repo.load(ctx)
}

func (repo *AssignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	assignments, err := repo.load(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}
	for _, asg := range assignments {
		if asg.ID == id {
			return asg, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *AssignmentRepository) FilterAssignments(ctx context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	assignments, err := repo.load(ctx)
	if err != nil {
		return nil, err
	}

	filter.Clean()
	search := strings.ToLower(filter.Search)

	matched := make([]assignment.Assignment, 0, len(assignments))
	for _, asg := range assignments {
		if filter.CourseID != nil && asg.CourseID != *filter.CourseID {
			continue
		}
		if filter.Completed != nil && asg.Completed != *filter.Completed {
			continue
		}
		if filter.Category != "" && asg.Category != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(asg.Title), search) {
			continue
		}
		matched = append(matched, asg)
	}
	return matched, nil
}

func (repo *AssignmentRepository) CreateAssignment(ctx context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	assignments, err := repo.load(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}

	maxID := 0
	for _, a := range assignments {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	asg.ID = maxID + 1

	assignments = append(assignments, asg)
	if err = repo.persist(ctx, assignments); err != nil {
		return assignment.Assignment{}, err
	}
	return asg, nil
}

func (repo *AssignmentRepository) UpdateAssignment(ctx context.Context, id int, data assignment.UpdateAssignment) (assignment.Assignment, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	assignments, err := repo.load(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}
	for i, asg := range assignments {
		if asg.ID != id {
			continue
		}
		merged := data.Merge(asg)
		assignments[i] = merged
		if err = repo.persist(ctx, assignments); err != nil {
			return assignment.Assignment{}, err
		}
		return merged, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *AssignmentRepository) DeleteAssignmentsByID(ctx context.Context, ids ...int) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	assignments, err := repo.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]assignment.Assignment, 0, len(assignments))
	for _, asg := range assignments {
		if !containsInt(ids, asg.ID) {
			kept = append(kept, asg)
		}
	}
	return repo.persist(ctx, kept)
}
