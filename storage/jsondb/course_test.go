package jsondb

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/studyflow-band-boost/core/course"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
)

func newCourseRepo(t *testing.T, blob string) (*CourseRepository, *slot.MemorySlot) {
	t.Helper()
	s := slot.NewMemorySlot()
	if blob != "" {
		if err := s.Write(context.Background(), []byte(blob)); err != nil {
			t.Fatalf("Write() failed, %v", err)
		}
	}
	return NewCourseRepository(s, 0), s
}

func TestCourseRepository_seedFallback(t *testing.T) {
	ctx := context.Background()
	repo, memSlot := newCourseRepo(t, "")

	seed, err := SeedCourses()
	if err != nil {
		t.Fatalf("SeedCourses() failed, %v", err)
	}
	if len(seed) == 0 {
		t.Fatal("bundled seed dataset is empty")
	}

	courses, err := repo.QueryAllCourses(ctx)
	if err != nil {
		t.Fatalf("QueryAllCourses() failed, %v", err)
	}
	if !reflect.DeepEqual(courses, seed) {
		t.Errorf("QueryAllCourses() = %+v, want bundled seed %+v", courses, seed)
	}

	// reads never write the seed back
	if data, err := memSlot.Read(ctx); err != nil || data != nil {
		t.Errorf("slot after read-only calls = (%q, %v), want unset", data, err)
	}

	// a mutation persists the whole collection
	created, err := repo.CreateCourse(ctx, course.Course{Code: "BIO 110", GradeCategories: []course.GradeCategory{}})
	if err != nil {
		t.Fatalf("CreateCourse() failed, %v", err)
	}
	maxSeedID := 0
	for _, crs := range seed {
		if crs.ID > maxSeedID {
			maxSeedID = crs.ID
		}
	}
	if created.ID != maxSeedID+1 {
		t.Errorf("CreateCourse().ID = %d, want %d", created.ID, maxSeedID+1)
	}
	if data, err := memSlot.Read(ctx); err != nil || data == nil {
		t.Errorf("slot after mutation = (%q, %v), want persisted collection", data, err)
	}
}

func TestCourseRepository_idAssignment(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCourseRepo(t, "[]")

	for want := 1; want <= 3; want++ {
		crs, err := repo.CreateCourse(ctx, course.Course{Code: fmt.Sprintf("CS %d01", want), GradeCategories: []course.GradeCategory{}})
		if err != nil {
			t.Fatalf("CreateCourse() failed, %v", err)
		}
		if crs.ID != want {
			t.Errorf("CreateCourse().ID = %d, want %d", crs.ID, want)
		}
	}

	// ids stay strictly increasing after deleting a lower id
	if err := repo.DeleteCoursesByID(ctx, 2); err != nil {
		t.Fatalf("DeleteCoursesByID() failed, %v", err)
	}
	crs, err := repo.CreateCourse(ctx, course.Course{Code: "CS 401", GradeCategories: []course.GradeCategory{}})
	if err != nil {
		t.Fatalf("CreateCourse() failed, %v", err)
	}
	if crs.ID != 4 {
		t.Errorf("CreateCourse().ID after delete = %d, want 4", crs.ID)
	}
}

func TestCourseRepository_codeUniqueness(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCourseRepo(t, "[]")

	created, err := repo.CreateCourse(ctx, course.Course{Code: "CS 201", GradeCategories: []course.GradeCategory{}})
	if err != nil {
		t.Fatalf("CreateCourse() failed, %v", err)
	}
	other, err := repo.CreateCourse(ctx, course.Course{Code: "MATH 221", GradeCategories: []course.GradeCategory{}})
	if err != nil {
		t.Fatalf("CreateCourse() failed, %v", err)
	}

	// codes compare case-insensitively
	if _, err = repo.CreateCourse(ctx, course.Course{Code: "cs 201"}); err != course.ErrCodeExists {
		t.Errorf("CreateCourse(duplicate) error = %v, want %v", err, course.ErrCodeExists)
	}

	if _, err = repo.UpdateCourse(ctx, other.ID, course.UpdateCourse{Code: null.StringFrom("CS 201")}); err != course.ErrCodeExists {
		t.Errorf("UpdateCourse(taken code) error = %v, want %v", err, course.ErrCodeExists)
	}

	// keeping its own code is not a conflict
	if _, err = repo.UpdateCourse(ctx, created.ID, course.UpdateCourse{Code: null.StringFrom("CS 201"), TargetGrade: null.Float64From(90)}); err != nil {
		t.Errorf("UpdateCourse(own code) failed, %v", err)
	}
}

func TestCourseRepository_getByID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCourseRepo(t, "[]")

	created, err := repo.CreateCourse(ctx, course.Course{
		Code:            "MATH 221",
		Color:           "#059669",
		TargetGrade:     85,
		GradeCategories: []course.GradeCategory{{Name: "Exams", Weight: 100}},
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed, %v", err)
	}

	got, err := repo.GetCourseByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCourseByID() failed, %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Errorf("GetCourseByID() = %+v, want %+v", got, created)
	}

	if _, err = repo.GetCourseByID(ctx, 999); err != course.ErrNotFound {
		t.Errorf("GetCourseByID(999) error = %v, want %v", err, course.ErrNotFound)
	}
}

func TestCourseRepository_update(t *testing.T) {
	ctx := context.Background()

	orig := course.Course{
		Code:        "PHYS 130",
		Color:       "#D97706",
		TargetGrade: 80,
		GradeCategories: []course.GradeCategory{
			{Name: "Homework", Weight: 25},
			{Name: "Exams", Weight: 75},
		},
	}

	tests := []struct {
		name string
		data course.UpdateCourse
		want func(crs course.Course) course.Course
	}{
		{
			name: "code only",
			data: course.UpdateCourse{Code: null.StringFrom("PHYS 131")},
			want: func(crs course.Course) course.Course { crs.Code = "PHYS 131"; return crs },
		},
		{
			name: "target grade only",
			data: course.UpdateCourse{TargetGrade: null.Float64From(92)},
			want: func(crs course.Course) course.Course { crs.TargetGrade = 92; return crs },
		},
		{
			name: "categories replaced wholesale",
			data: course.UpdateCourse{GradeCategories: []course.GradeCategory{{Name: "Labs", Weight: 100}}},
			want: func(crs course.Course) course.Course {
				crs.GradeCategories = []course.GradeCategory{{Name: "Labs", Weight: 100}}
				return crs
			},
		},
		{
			name: "categories cleared with empty sequence",
			data: course.UpdateCourse{GradeCategories: []course.GradeCategory{}},
			want: func(crs course.Course) course.Course {
				crs.GradeCategories = []course.GradeCategory{}
				return crs
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newCourseRepo(t, "[]")
			created, err := repo.CreateCourse(ctx, orig)
			if err != nil {
				t.Fatalf("CreateCourse() failed, %v", err)
			}

			updated, err := repo.UpdateCourse(ctx, created.ID, tt.data)
			if err != nil {
				t.Fatalf("UpdateCourse() failed, %v", err)
			}
			want := tt.want(created)
			if !reflect.DeepEqual(updated, want) {
				t.Errorf("UpdateCourse() = %+v, want %+v", updated, want)
			}

			// the merge was persisted
			stored, err := repo.GetCourseByID(ctx, created.ID)
			if err != nil {
				t.Fatalf("GetCourseByID() failed, %v", err)
			}
			if !reflect.DeepEqual(stored, want) {
				t.Errorf("stored course = %+v, want %+v", stored, want)
			}
		})
	}

	t.Run("not found", func(t *testing.T) {
		repo, _ := newCourseRepo(t, "[]")
		if _, err := repo.UpdateCourse(ctx, 42, course.UpdateCourse{Code: null.StringFrom("NOPE")}); err != course.ErrNotFound {
			t.Errorf("UpdateCourse(42) error = %v, want %v", err, course.ErrNotFound)
		}
	})
}

func TestCourseRepository_deleteIdempotence(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCourseRepo(t, "[]")

	created, err := repo.CreateCourse(ctx, course.Course{Code: "HIST 150", GradeCategories: []course.GradeCategory{}})
	if err != nil {
		t.Fatalf("CreateCourse() failed, %v", err)
	}
	if _, err = repo.CreateCourse(ctx, course.Course{Code: "HIST 160", GradeCategories: []course.GradeCategory{}}); err != nil {
		t.Fatalf("CreateCourse() failed, %v", err)
	}

	if err = repo.DeleteCoursesByID(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCoursesByID() failed, %v", err)
	}
	if err = repo.DeleteCoursesByID(ctx, created.ID); err != nil {
		t.Errorf("DeleteCoursesByID() second call failed, %v", err)
	}

	courses, err := repo.QueryAllCourses(ctx)
	if err != nil {
		t.Fatalf("QueryAllCourses() failed, %v", err)
	}
	if len(courses) != 1 || courses[0].Code != "HIST 160" {
		t.Errorf("QueryAllCourses() after double delete = %+v, want only HIST 160", courses)
	}
}

func TestCourseRepository_corruptBlob(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCourseRepo(t, `{"oops":`)

	if _, err := repo.QueryAllCourses(ctx); err == nil || !strings.Contains(err.Error(), "parsing stored courses") {
		t.Errorf("QueryAllCourses() error = %v, want parse failure", err)
	}
	if _, err := repo.CreateCourse(ctx, course.Course{Code: "CS 201"}); err == nil || !strings.Contains(err.Error(), "parsing stored courses") {
		t.Errorf("CreateCourse() error = %v, want parse failure", err)
	}
}

func TestCourseRepository_latency(t *testing.T) {
	ctx := context.Background()
	s := slot.NewMemorySlot()
	if err := s.Write(ctx, []byte("[]")); err != nil {
		t.Fatalf("Write() failed, %v", err)
	}
	repo := NewCourseRepository(s, 30*time.Millisecond)

	start := time.Now()
	if _, err := repo.QueryAllCourses(ctx); err != nil {
		t.Fatalf("QueryAllCourses() failed, %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("QueryAllCourses() returned after %v, want >= 30ms", elapsed)
	}

	// a canceled context skips the wait and aborts the call
	canceledCtx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := repo.QueryAllCourses(canceledCtx); err != context.Canceled {
		t.Errorf("QueryAllCourses() with canceled ctx error = %v, want %v", err, context.Canceled)
	}
}

func TestCourseService_roundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newCourseRepo(t, "[]")
	svc := course.NewService(repo)

	created, err := svc.Create(ctx, course.NewCourse{Code: "CS 201", Color: "#4F46E5", TargetGrade: 90})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	if created.GradeCategories == nil || len(created.GradeCategories) != 0 {
		t.Errorf("Create().GradeCategories = %v, want defaulted empty sequence", created.GradeCategories)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() failed, %v", err)
	}
	want := course.Course{ID: created.ID, Code: "CS 201", Color: "#4F46E5", TargetGrade: 90, GradeCategories: []course.GradeCategory{}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetByID() = %+v, want %+v", got, want)
	}
}
