package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/apper-canvas/studyflow-band-boost/core/assignment"
	"github.com/apper-canvas/studyflow-band-boost/core/course"
	"github.com/apper-canvas/studyflow-band-boost/core/grades"
)

type gradesApi struct {
	courseSvc     course.ServiceInterface
	assignmentSvc assignment.ServiceInterface
}

func registerGradesAPI(g *echo.Group, courseSvc course.ServiceInterface, assignmentSvc assignment.ServiceInterface) {
	api := gradesApi{
		courseSvc:     courseSvc,
		assignmentSvc: assignmentSvc,
	}

	g.GET("/courses/:id/grades", api.courseGrades)
	g.GET("/overview", api.overview)
}

// Handlers

func (api *gradesApi) courseGrades(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return errHttpNotFound
	}
	reqCtx := ctx.Request().Context()

	crs, err := api.courseSvc.GetByID(reqCtx, id)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}

	assignments, err := api.assignmentSvc.Filter(reqCtx, assignment.QueryFilter{CourseID: &crs.ID})
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}

	return ctx.JSON(http.StatusOK, grades.Aggregate(crs, assignments))
}

// overview returns the grade breakdown of every course. The two stores are
// independent so both reads run concurrently.
func (api *gradesApi) overview(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var (
		courses     []course.Course
		assignments []assignment.Assignment
	)
	g, gCtx := errgroup.WithContext(reqCtx)
	g.Go(func() (err error) {
		courses, err = api.courseSvc.QueryAll(gCtx)
		return errors.Wrap(err, "querying courses")
	})
	g.Go(func() (err error) {
		assignments, err = api.assignmentSvc.QueryAll(gCtx)
		return errors.Wrap(err, "querying assignments")
	})
	if err := g.Wait(); err != nil {
		return err
	}

	summaries := make([]grades.Summary, 0, len(courses))
	for _, crs := range courses {
		summaries = append(summaries, grades.Aggregate(crs, grades.FilterGradable(assignments, crs.ID)))
	}
	return ctx.JSON(http.StatusOK, summaries)
}
