package assignment

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/studyflow-band-boost/core"
)

// Assignment is a gradable unit of work belonging to a Course. Category names
// a GradeCategory of the owning Course; an unmatched name simply keeps the
// assignment out of the grade aggregation.
type Assignment struct {
	ID        int          `json:"id"`
	CourseID  int          `json:"course_id"`
	Title     string       `json:"title"`
	Category  string       `json:"category"`
	Completed bool         `json:"completed"`
	Grade     null.Float64 `json:"grade"`
}

// Gradable reports whether the assignment participates in grade aggregation:
// it must be completed and actually graded.
func (a Assignment) Gradable() bool {
	return a.Completed && a.Grade.Valid
}

// NewAssignment contains the information needed to create a new Assignment.
type NewAssignment struct {
	CourseID  int          `json:"course_id" validate:"required,min=1"`
	Title     string       `json:"title" validate:"required"`
	Category  string       `json:"category"`
	Completed bool         `json:"completed"`
	Grade     null.Float64 `json:"grade" validate:"omitempty,min=0,max=100"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Category = core.CleanString(na.Category)
	return validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify an
// existing Assignment. Absent fields keep their stored values. Grade tracks
// key presence so that an explicit `"grade": null` clears a recorded grade
// while an absent key leaves it untouched.
type UpdateAssignment struct {
	CourseID  null.Int      `json:"course_id"`
	Title     null.String   `json:"title"`
	Category  null.String   `json:"category"`
	Completed null.Bool     `json:"completed"`
	Grade     *null.Float64 `json:"grade" validate:"omitempty,min=0,max=100"`
}

func (ua *UpdateAssignment) UnmarshalJSON(b []byte) error {
	// alias avoids recursing into this method
	type alias UpdateAssignment
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*ua = UpdateAssignment(a)

	// encoding/json nils out the pointer on explicit null; recover key
	// presence so that `"grade": null` still means "clear the grade"
	if ua.Grade == nil {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(b, &keys); err != nil {
			return err
		}
		if _, ok := keys["grade"]; ok {
			ua.Grade = &null.Float64{}
		}
	}
	return nil
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	if ua.Title.Valid {
		ua.Title.String = core.CleanString(ua.Title.String)
	}
	if ua.Category.Valid {
		ua.Category.String = core.CleanString(ua.Category.String)
	}
	return validate.Struct(ua)
}

// IsEmpty reports whether no field was provided at all.
func (ua *UpdateAssignment) IsEmpty() bool {
	return !ua.CourseID.Valid && !ua.Title.Valid && !ua.Category.Valid && !ua.Completed.Valid && ua.Grade == nil
}

// Merge overlays the provided fields on top of `orig` and returns the result.
// Unset fields are carried over untouched.
func (ua UpdateAssignment) Merge(orig Assignment) Assignment {
	merged := orig
	if ua.CourseID.Valid {
		merged.CourseID = ua.CourseID.Int
	}
	if ua.Title.Valid {
		merged.Title = ua.Title.String
	}
	if ua.Category.Valid {
		merged.Category = ua.Category.String
	}
	if ua.Completed.Valid {
		merged.Completed = ua.Completed.Bool
	}
	if ua.Grade != nil {
		merged.Grade = *ua.Grade
	}
	return merged
}

// QueryFilter narrows down FilterAssignments results.
type QueryFilter struct {
	Search    string `query:"search"`
	CourseID  *int   `query:"course_id"`
	Completed *bool  `query:"completed"`
	Category  string `query:"category"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.CourseID == nil && qf.Completed == nil && qf.Category == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category)
}
