package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/studyflow-band-boost/core"
)

type (
	// GradeCategory is a named weighted component of a Course's final grade,
	// eg. "Homework" at 40%. Weights are percentage points and are not required
	// to sum to 100 across a Course.
	GradeCategory struct {
		Name   string  `json:"name" validate:"required"`
		Weight float64 `json:"weight" validate:"min=0,max=100"`
	}

	// Course is a tracked academic course with grading-category weights and a
	// target grade. GradeCategories keeps its insertion order.
	Course struct {
		ID              int             `json:"id"`
		Code            string          `json:"code"`
		Color           string          `json:"color"` // display hint, opaque to logic
		TargetGrade     float64         `json:"target_grade"`
		GradeCategories []GradeCategory `json:"grade_categories"`
	}
)

// NewCourse contains the information needed to create a new Course.
type NewCourse struct {
	Code            string          `json:"code" validate:"required"`
	Color           string          `json:"color" validate:"omitempty,hexcolor"`
	TargetGrade     float64         `json:"target_grade" validate:"min=0,max=100"`
	GradeCategories []GradeCategory `json:"grade_categories" validate:"omitempty,dive"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Color = core.CleanString(nc.Color)
	for i := range nc.GradeCategories {
		nc.GradeCategories[i].Name = core.CleanString(nc.GradeCategories[i].Name)
	}
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing
// Course. Absent fields keep their stored values; a nil GradeCategories means
// "leave unchanged" while an empty one clears the definitions.
type UpdateCourse struct {
	Code            null.String     `json:"code"`
	Color           null.String     `json:"color" validate:"omitempty,hexcolor"`
	TargetGrade     null.Float64    `json:"target_grade" validate:"omitempty,min=0,max=100"`
	GradeCategories []GradeCategory `json:"grade_categories" validate:"omitempty,dive"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	if uc.Code.Valid {
		uc.Code.String = core.CleanString(uc.Code.String)
	}
	if uc.Color.Valid {
		uc.Color.String = core.CleanString(uc.Color.String)
	}
	for i := range uc.GradeCategories {
		uc.GradeCategories[i].Name = core.CleanString(uc.GradeCategories[i].Name)
	}
	return validate.Struct(uc)
}

// IsEmpty reports whether no field was provided at all.
func (uc *UpdateCourse) IsEmpty() bool {
	return !uc.Code.Valid && !uc.Color.Valid && !uc.TargetGrade.Valid && uc.GradeCategories == nil
}

// Merge overlays the provided fields on top of `orig` and returns the result.
// Unset fields are carried over untouched.
func (uc UpdateCourse) Merge(orig Course) Course {
	merged := orig
	if uc.Code.Valid {
		merged.Code = uc.Code.String
	}
	if uc.Color.Valid {
		merged.Color = uc.Color.String
	}
	if uc.TargetGrade.Valid {
		merged.TargetGrade = uc.TargetGrade.Float64
	}
	if uc.GradeCategories != nil {
		merged.GradeCategories = uc.GradeCategories
	}
	return merged
}
