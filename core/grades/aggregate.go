// Package grades computes weighted grade breakdowns for courses.
package grades

import (
	"math"

	"github.com/apper-canvas/studyflow-band-boost/core/assignment"
	"github.com/apper-canvas/studyflow-band-boost/core/course"
)

type (
	// CategoryGrade is the computed standing of a single grade category.
	// It is derived data with no lifecycle of its own; recompute it rather
	// than persisting it.
	CategoryGrade struct {
		Name          string  `json:"name"`
		Weight        float64 `json:"weight"`
		Average       float64 `json:"average"`
		Count         int     `json:"count"`
		WeightedScore float64 `json:"weighted_score"`
	}

	// Summary is the weighted grade breakdown of one Course.
	Summary struct {
		CourseID      int             `json:"course_id"`
		Categories    []CategoryGrade `json:"categories"`
		CurrentGrade  float64         `json:"current_grade"`
		TotalWeight   float64         `json:"total_weight"`
		AdjustedGrade float64         `json:"adjusted_grade"`
		DisplayGrade  int             `json:"display_grade"`
	}
)

// round1 rounds half up to one decimal place.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// FilterGradable selects the assignments of `courseID` that count toward its
// grade: completed ones with a recorded grade.
func FilterGradable(assignments []assignment.Assignment, courseID int) []assignment.Assignment {
	gradable := make([]assignment.Assignment, 0, len(assignments))
	for _, asg := range assignments {
		if asg.CourseID == courseID && asg.Gradable() {
			gradable = append(gradable, asg)
		}
	}
	return gradable
}

// Aggregate computes the weighted grade breakdown of `crs` from its gradable
// assignments. Categories keep the order they are defined in on the Course.
//
// Averages and weighted scores are rounded to one decimal place before the
// course-level sums so that the rollup tracks the displayed per-category
// figures; summing unrounded values diverges on grades that are not already
// round to one decimal place. Categories without any graded assignment are
// excluded from the weight denominator: the adjusted grade reflects only
// categories with actual data, and is 0 when there is no data at all.
func Aggregate(crs course.Course, assignments []assignment.Assignment) Summary {
	sum := Summary{
		CourseID:   crs.ID,
		Categories: make([]CategoryGrade, 0, len(crs.GradeCategories)),
	}

	for _, cat := range crs.GradeCategories {
		cg := CategoryGrade{Name: cat.Name, Weight: cat.Weight}

		var total float64
		for _, asg := range assignments {
			if asg.Category == cat.Name && asg.Gradable() {
				total += asg.Grade.Float64
				cg.Count++
			}
		}
		if cg.Count > 0 {
			cg.Average = round1(total / float64(cg.Count))
			cg.WeightedScore = round1(cg.Average * cat.Weight / 100)
			sum.TotalWeight += cat.Weight
		}

		sum.CurrentGrade += cg.WeightedScore
		sum.Categories = append(sum.Categories, cg)
	}

	if sum.TotalWeight > 0 {
		sum.AdjustedGrade = sum.CurrentGrade / sum.TotalWeight * 100
	}
	sum.DisplayGrade = int(math.Floor(sum.AdjustedGrade + 0.5))
	return sum
}
