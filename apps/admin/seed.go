package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/apper-canvas/studyflow-band-boost/storage/jsondb"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
)

// seed writes the bundled dataset to the record stores so that backends like
// redis or postgres hold it explicitly instead of relying on the read-time
// fallback. Stores that already hold data are left alone unless force is set.
func (cli *commandLine) seed(force bool) error {
	ctx := context.Background()

	courses, err := jsondb.SeedCourses()
	if err != nil {
		return err
	}
	seeded, err := seedSlot(ctx, cli.courseSlot, courses, force)
	if err != nil {
		return errors.Wrap(err, "seeding courses")
	}
	if seeded {
		fmt.Printf("seeded %d courses\n", len(courses))
	} else {
		fmt.Println("courses store already holds data; use -force to overwrite")
	}

	assignments, err := jsondb.SeedAssignments()
	if err != nil {
		return err
	}
	seeded, err = seedSlot(ctx, cli.assignmentSlot, assignments, force)
	if err != nil {
		return errors.Wrap(err, "seeding assignments")
	}
	if seeded {
		fmt.Printf("seeded %d assignments\n", len(assignments))
	} else {
		fmt.Println("assignments store already holds data; use -force to overwrite")
	}
	return nil
}

func seedSlot(ctx context.Context, s slot.Slot, records interface{}, force bool) (bool, error) {
	data, err := s.Read(ctx)
	if err != nil {
		return false, err
	}
	if data != nil && !force {
		return false, nil
	}
	blob, err := json.Marshal(records)
	if err != nil {
		return false, err
	}
	if err = s.Write(ctx, blob); err != nil {
		return false, err
	}
	return true, nil
}
