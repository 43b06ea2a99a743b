package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/apper-canvas/studyflow-band-boost/core"
)

var (
	uniqueCategoryTag  = "uniquecategory"
	uniqueCategoryText = "category names must be unique within a course"

	requiredTag = "required"
)

// InitValidators registers the course validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(courseStructValidation, NewCourse{}, UpdateCourse{})
	core.RegisterCustomTranslation(validate, translator, uniqueCategoryTag, uniqueCategoryText)
}

// courseStructValidation does struct level validation on NewCourse and UpdateCourse structs.
func courseStructValidation(sl validator.StructLevel) {
	switch crs := sl.Current().Interface().(type) {
	case NewCourse:
		validateCategories(crs.GradeCategories, sl)
	case UpdateCourse:
		if crs.Code.Valid && crs.Code.String == "" {
			sl.ReportError(crs.Code, "code", "Code", requiredTag, "")
		}
		validateCategories(crs.GradeCategories, sl)
	}
}

// validateCategories checks that provided category names are unique within the course.
func validateCategories(cats []GradeCategory, sl validator.StructLevel) {
	seen := make(map[string]struct{}, len(cats))
	for _, cat := range cats {
		if _, ok := seen[cat.Name]; ok {
			sl.ReportError(cats, "grade_categories", "GradeCategories", uniqueCategoryTag, "")
			return
		}
		seen[cat.Name] = struct{}{}
	}
}
