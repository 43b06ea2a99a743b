package assignment

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	requiredTag = "required"
	minTag      = "min"
)

// InitValidators registers the assignment validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(assignmentStructValidation, UpdateAssignment{})
}

// assignmentStructValidation does struct level validation on UpdateAssignment structs.
// Provided-but-empty fields are rejected where the stored value must stay meaningful.
func assignmentStructValidation(sl validator.StructLevel) {
	ua, ok := sl.Current().Interface().(UpdateAssignment)
	if !ok {
		return
	}
	if ua.Title.Valid && ua.Title.String == "" {
		sl.ReportError(ua.Title, "title", "Title", requiredTag, "")
	}
	if ua.CourseID.Valid && ua.CourseID.Int < 1 {
		sl.ReportError(ua.CourseID, "course_id", "CourseID", minTag, "1")
	}
}
