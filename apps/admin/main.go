package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/apper-canvas/studyflow-band-boost/core"
	emailsvc "github.com/apper-canvas/studyflow-band-boost/services/email"
	logsvc "github.com/apper-canvas/studyflow-band-boost/services/logger"
	"github.com/apper-canvas/studyflow-band-boost/storage/database"
	"github.com/apper-canvas/studyflow-band-boost/storage/jsondb"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	appLogger := logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(!conf.Debug)

	// set up record stores
	courseSlot, assignmentSlot, db, cleanup, err := setUpSlots(conf)
	errAndDie(err)
	defer cleanup()

	// set up mail
	core.ParseEmailTemplates(conf, appLogger)
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, appLogger)
	}

	// start CLI
	cli := commandLine{
		conf:           conf,
		db:             db,
		courseSlot:     courseSlot,
		assignmentSlot: assignmentSlot,
		courseRepo:     jsondb.NewCourseRepository(courseSlot, conf.Storage.MockLatency),
		assignmentRepo: jsondb.NewAssignmentRepository(assignmentSlot, conf.Storage.MockLatency),
		mailSvc:        mailSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

// setUpSlots opens the configured storage backend and returns one slot per
// collection. db is non-nil only for the postgres backend; cleanup releases
// the underlying connections.
func setUpSlots(conf *core.Config) (courses, assignments slot.Slot, db *sql.DB, cleanup func(), err error) {
	cleanup = func() {}

	switch conf.Storage.Backend {
	case "memory":
		return slot.NewMemorySlot(), slot.NewMemorySlot(), nil, cleanup, nil

	case "file":
		dataDir := conf.Storage.DataDir
		if !filepath.IsAbs(dataDir) {
			dataDir = filepath.Join(conf.WorkDir, dataDir)
		}
		return slot.NewFileSlot(dataDir, conf.Storage.CoursesSlot),
			slot.NewFileSlot(dataDir, conf.Storage.AssignmentsSlot),
			nil, cleanup, nil

	case "redis":
		client, rErr := slot.OpenRedis(conf)
		if rErr != nil {
			return nil, nil, nil, cleanup, rErr
		}
		cleanup = func() { _ = client.Close() }
		return slot.NewRedisSlot(client, conf.Storage.CoursesSlot),
			slot.NewRedisSlot(client, conf.Storage.AssignmentsSlot),
			nil, cleanup, nil

	case "postgres":
		sqlxDB, dbErr := openDB(conf)
		if dbErr != nil {
			return nil, nil, nil, cleanup, dbErr
		}
		cleanup = func() { _ = sqlxDB.Close() }
		return slot.NewPostgresSlot(sqlxDB, conf.Storage.CoursesSlot),
			slot.NewPostgresSlot(sqlxDB, conf.Storage.AssignmentsSlot),
			sqlxDB.DB, cleanup, nil

	default:
		return nil, nil, nil, cleanup, errors.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
}

// openDB connects to the postgres database without running migrations; the
// migrate command owns those.
func openDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}
	return database.Open(conf)
}
