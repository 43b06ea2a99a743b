package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/apper-canvas/studyflow-band-boost/core"
	"github.com/apper-canvas/studyflow-band-boost/core/assignment"
	"github.com/apper-canvas/studyflow-band-boost/core/course"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf           *core.Config
	db             *sql.DB // nil unless the postgres backend is configured
	courseSlot     slot.Slot
	assignmentSlot slot.Slot
	courseRepo     course.Repository
	assignmentRepo assignment.Repository
	mailSvc        core.EmailService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed [-force]          - write the bundled dataset to the record stores")
	fmt.Println("  migrate COMMAND [ARGS] - manage schema migrations (up, down, status, ...)")
	fmt.Println("  report [-to EMAIL]     - email the grade report for all courses")
	fmt.Println("  stats                  - print record store counts")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedForce := seedCmd.Bool("force", false, "Overwrite stores that already hold data.")

	reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
	reportTo := reportCmd.String("to", "", "The recipient's email. Defaults to the configured report recipient.")

	switch args[1] {
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedForce)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.report(*reportTo)
	case "stats":
		return cli.stats()
	default:
		cli.printUsage()
		return errHelp
	}
}
