package testutil

import (
	"context"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/studyflow-band-boost/core/assignment"
	"github.com/apper-canvas/studyflow-band-boost/core/course"
	"github.com/apper-canvas/studyflow-band-boost/storage/jsondb"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
)

// NewCourseRepository returns a course repository backed by a fresh in-memory
// slot with no artificial latency. The slot is primed empty so reads do not
// fall back to the bundled seed data.
func NewCourseRepository(t *testing.T) (*jsondb.CourseRepository, slot.Slot) {
	s := slot.NewMemorySlot()
	ResetStore(t, s)
	return jsondb.NewCourseRepository(s, 0), s
}

// NewAssignmentRepository is NewCourseRepository for assignments.
func NewAssignmentRepository(t *testing.T) (*jsondb.AssignmentRepository, slot.Slot) {
	s := slot.NewMemorySlot()
	ResetStore(t, s)
	return jsondb.NewAssignmentRepository(s, 0), s
}

// ResetStore empties a slot-backed collection.
func ResetStore(t *testing.T, s slot.Slot) {
	t.Helper()
	if err := s.Write(context.Background(), []byte("[]")); err != nil {
		t.Fatalf("ResetStore() failed: %v", err)
	}
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	code, color string,
	targetGrade float64,
	categories ...course.GradeCategory,
) course.Course {
	t.Helper()
	if categories == nil {
		categories = []course.GradeCategory{}
	}
	crs, err := repo.CreateCourse(context.Background(), course.Course{
		Code:            code,
		Color:           color,
		TargetGrade:     targetGrade,
		GradeCategories: categories,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	courseID int,
	title, category string,
	completed bool,
	grade ...float64,
) assignment.Assignment {
	t.Helper()
	asg := assignment.Assignment{
		CourseID:  courseID,
		Title:     title,
		Category:  category,
		Completed: completed,
	}
	if len(grade) > 0 {
		asg.Grade = null.Float64From(grade[0])
	}
	created, err := repo.CreateAssignment(context.Background(), asg)
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return created
}
