package jsondb

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/apper-canvas/studyflow-band-boost/core/course"
	appfs "github.com/apper-canvas/studyflow-band-boost/fs"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
)

// SeedCourses returns the bundled default course dataset. It is reference
// data: repositories fall back to it when their slot has never been written,
// without writing it back.
func SeedCourses() ([]course.Course, error) {
	data, err := appfs.FS.ReadFile(appfs.SeedCoursesPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading bundled courses")
	}
	var courses []course.Course
	if err = json.Unmarshal(data, &courses); err != nil {
		return nil, errors.Wrap(err, "parsing bundled courses")
	}
	return courses, nil
}

type CourseRepository struct {
	slot    slot.Slot
	latency time.Duration
	mutex   sync.Mutex // serializes in-process read-modify-write cycles
}

var _ course.Repository = (*CourseRepository)(nil)

func NewCourseRepository(s slot.Slot, latency time.Duration) *CourseRepository {
	return &CourseRepository{slot: s, latency: latency}
}

// load re-reads and re-parses the whole collection. An unset slot falls back
// to the bundled seed dataset. A corrupt blob is a hard error; it propagates
// rather than silently discarding data.
func (repo *CourseRepository) load(ctx context.Context) ([]course.Course, error) {
	if err := delay(ctx, repo.latency); err != nil {
		return nil, err
	}

	data, err := repo.slot.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading courses slot")
	}
	if data == nil {
		return SeedCourses()
	}

	var courses []course.Course
	if err = json.Unmarshal(data, &courses); err != nil {
		return nil, errors.Wrap(err, "parsing stored courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return courses, nil
}

func (repo *CourseRepository) persist(ctx context.Context, courses []course.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return errors.Wrap(err, "encoding courses")
	}
	if err = repo.slot.Write(ctx, data); err != nil {
		return errors.Wrap(err, "writing courses slot")
	}
	return nil
}

func (repo *CourseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	return repo.load(ctx)
}

func (repo *CourseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	courses, err := repo.load(ctx)
	if err != nil {
		return course.Course{}, err
	}
	for _, crs := range courses {
		if crs.ID == id {
			return crs, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *CourseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	courses, err := repo.load(ctx)
	if err != nil {
		return course.Course{}, err
	}
	if codeTaken(courses, crs.Code, 0) {
		return course.Course{}, course.ErrCodeExists
	}

	maxID := 0
	for _, c := range courses {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	crs.ID = maxID + 1

	courses = append(courses, crs)
	if err = repo.persist(ctx, courses); err != nil {
		return course.Course{}, err
	}
	return crs, nil
}

func (repo *CourseRepository) UpdateCourse(ctx context.Context, id int, data course.UpdateCourse) (course.Course, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	courses, err := repo.load(ctx)
	if err != nil {
		return course.Course{}, err
	}
	if data.Code.Valid && codeTaken(courses, data.Code.String, id) {
		return course.Course{}, course.ErrCodeExists
	}
	for i, crs := range courses {
		if crs.ID != id {
			continue
		}
		merged := data.Merge(crs)
		courses[i] = merged
		if err = repo.persist(ctx, courses); err != nil {
			return course.Course{}, err
		}
		return merged, nil
	}
	return course.Course{}, course.ErrNotFound
}

// codeTaken reports whether another course than `selfID` already uses `code`.
// Codes compare case-insensitively.
func codeTaken(courses []course.Course, code string, selfID int) bool {
	for _, crs := range courses {
		if crs.ID != selfID && strings.EqualFold(crs.Code, code) {
			return true
		}
	}
	return false
}

func (repo *CourseRepository) DeleteCoursesByID(ctx context.Context, ids ...int) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	courses, err := repo.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]course.Course, 0, len(courses))
	for _, crs := range courses {
		if !containsInt(ids, crs.ID) {
			kept = append(kept, crs)
		}
	}
	return repo.persist(ctx, kept)
}
