package main

import (
	"context"
	"fmt"

	"github.com/apper-canvas/studyflow-band-boost/core/grades"
)

// stats prints how many records each store holds and where each course stands.
func (cli *commandLine) stats() error {
	ctx := context.Background()

	courses, err := cli.courseRepo.QueryAllCourses(ctx)
	if err != nil {
		return err
	}
	assignments, err := cli.assignmentRepo.QueryAllAssignments(ctx)
	if err != nil {
		return err
	}

	var completed, graded int
	for _, asg := range assignments {
		if asg.Completed {
			completed++
		}
		if asg.Gradable() {
			graded++
		}
	}

	fmt.Printf("backend:     %s\n", cli.conf.Storage.Backend)
	fmt.Printf("courses:     %d\n", len(courses))
	fmt.Printf("assignments: %d (%d completed, %d graded)\n", len(assignments), completed, graded)
	for _, crs := range courses {
		sum := grades.Aggregate(crs, grades.FilterGradable(assignments, crs.ID))
		fmt.Printf("  %-10s %3d%% (target %.0f%%)\n", crs.Code, sum.DisplayGrade, crs.TargetGrade)
	}
	return nil
}
