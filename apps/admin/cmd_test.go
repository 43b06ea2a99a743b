package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/mail"
	"os"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/apper-canvas/studyflow-band-boost/core"
	"github.com/apper-canvas/studyflow-band-boost/core/course"
	emailsvc "github.com/apper-canvas/studyflow-band-boost/services/email"
	logsvc "github.com/apper-canvas/studyflow-band-boost/services/logger"
	"github.com/apper-canvas/studyflow-band-boost/storage/jsondb"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
	testutil "github.com/apper-canvas/studyflow-band-boost/tests"
)

var (
	conf           *core.Config
	courseRepo     *jsondb.CourseRepository
	assignmentRepo *jsondb.AssignmentRepository
)

func TestMain(m *testing.M) {
	_ = os.Setenv("ENV", "TEST")
	conf = core.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)
	core.ParseEmailTemplates(conf, logger)

	os.Exit(m.Run())
}

func setup(t *testing.T) *commandLine {
	// set up in-memory stores & repos
	var courseSlot, assignmentSlot slot.Slot
	courseRepo, courseSlot = testutil.NewCourseRepository(t)
	assignmentRepo, assignmentSlot = testutil.NewAssignmentRepository(t)

	// lazy handle; never connected, the goose mock ignores it
	db, err := sql.Open("postgres", "")
	if err != nil {
		t.Fatalf("sql.Open() failed, %v", err)
	}

	// start CLI
	return &commandLine{
		conf:           conf,
		db:             db,
		courseSlot:     courseSlot,
		assignmentSlot: assignmentSlot,
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		mailSvc:        emailsvc.NewConsoleServiceMock(conf),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "add_archived_flag", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	// swap in never-written stores; setup primes its slots empty and seed
	// treats an empty collection as existing data
	courseSlot, assignmentSlot := slot.NewMemorySlot(), slot.NewMemorySlot()
	cli.courseSlot, cli.assignmentSlot = courseSlot, assignmentSlot
	cli.courseRepo = jsondb.NewCourseRepository(courseSlot, 0)
	cli.assignmentRepo = jsondb.NewAssignmentRepository(assignmentSlot, 0)

	seedCourses, err := jsondb.SeedCourses()
	if err != nil {
		t.Fatalf("SeedCourses() failed, %v", err)
	}
	seedAssignments, err := jsondb.SeedAssignments()
	if err != nil {
		t.Fatalf("SeedAssignments() failed, %v", err)
	}

	ctx := context.Background()
	checkSlot := func(s slot.Slot, want interface{}) {
		t.Helper()
		data, err := s.Read(ctx)
		if err != nil {
			t.Fatalf("slot.Read() failed, %v", err)
		}
		if data == nil {
			t.Fatal("store was not written")
		}
		wantData, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("json.Marshal() failed, %v", err)
		}
		if !bytes.Equal(data, wantData) {
			t.Errorf("slot data = %s, want %s", data, wantData)
		}
	}

	// fresh stores take the bundled dataset
	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() failed, %v", err)
	}
	checkSlot(courseSlot, seedCourses)
	checkSlot(assignmentSlot, seedAssignments)

	// existing data is kept without -force
	testutil.CreateCourse(t, cli.courseRepo, "HIST 160", "#f59e0b", 80)
	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() failed, %v", err)
	}
	courses, err := cli.courseRepo.QueryAllCourses(ctx)
	if err != nil {
		t.Fatalf("QueryAllCourses() failed, %v", err)
	}
	if want := len(seedCourses) + 1; len(courses) != want {
		t.Errorf("len(courses) = %d, want untouched %d", len(courses), want)
	}

	// -force overwrites
	if err := cli.run([]string{"admin", "seed", "-force"}); err != nil {
		t.Fatalf("cli.run() failed, %v", err)
	}
	checkSlot(courseSlot, seedCourses)
	checkSlot(assignmentSlot, seedAssignments)
}

func Test_commandLine_report(t *testing.T) {
	cli := setup(t)

	math := testutil.CreateCourse(t, courseRepo, "MATH 201", "#6366f1", 85,
		course.GradeCategory{Name: "Homework", Weight: 100})
	testutil.CreateAssignment(t, assignmentRepo, math.ID, "Problem Set 1", "Homework", true, 90)
	testutil.CreateAssignment(t, assignmentRepo, math.ID, "Problem Set 2", "Homework", false)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no recipient", args: []string{"report"}, wantErrStr: "no recipient: pass -to or set REPORTRECIPIENT"},
		{name: "report sent", args: []string{"report", "-to", "student@test.cd"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			emailsvc.SentMessages = nil

			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
				return
			}

			if len(emailsvc.SentMessages) != 1 {
				t.Fatalf("len(SentMessages) = %d, want 1", len(emailsvc.SentMessages))
			}
			msg := emailsvc.SentMessages[0]
			if want := []mail.Address{{Address: "student@test.cd"}}; !reflect.DeepEqual(msg.To, want) {
				t.Errorf("msg.To = %v, want %v", msg.To, want)
			}
			if want := "Grade report"; msg.Subject != want {
				t.Errorf("msg.Subject = %q, want %q", msg.Subject, want)
			}
			if want := "MATH 201: 90% (target 85%, 1 graded)"; !strings.Contains(msg.TextContent, want) {
				t.Errorf("msg.TextContent = %q, want it to contain %q", msg.TextContent, want)
			}
			if !strings.Contains(msg.HTMLContent, "MATH 201") {
				t.Error("msg.HTMLContent does not mention the course")
			}
		})
	}
}

func Test_commandLine_stats(t *testing.T) {
	cli := setup(t)

	bio := testutil.CreateCourse(t, courseRepo, "BIO 110", "#10b981", 75)
	testutil.CreateAssignment(t, assignmentRepo, bio.ID, "Reading Notes", "Homework", true, 88)
	testutil.CreateAssignment(t, assignmentRepo, bio.ID, "Lab Prep", "Labs", true)
	testutil.CreateAssignment(t, assignmentRepo, bio.ID, "Essay", "Homework", false)

	if err := cli.run([]string{"admin", "stats"}); err != nil {
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}
