package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	echoapi "github.com/apper-canvas/studyflow-band-boost/apps/api/echo"
	"github.com/apper-canvas/studyflow-band-boost/core"
	"github.com/apper-canvas/studyflow-band-boost/core/assignment"
	"github.com/apper-canvas/studyflow-band-boost/core/course"
	logsvc "github.com/apper-canvas/studyflow-band-boost/services/logger"
	"github.com/apper-canvas/studyflow-band-boost/storage/database"
	"github.com/apper-canvas/studyflow-band-boost/storage/jsondb"
	"github.com/apper-canvas/studyflow-band-boost/storage/slot"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up logger
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up record stores
	courseSlot, assignmentSlot, cleanup, err := setUpSlots(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer cleanup()

	// set up services
	courseSvc := course.NewService(jsondb.NewCourseRepository(courseSlot, conf.Storage.MockLatency))
	assignmentSvc := assignment.NewService(jsondb.NewAssignmentRepository(assignmentSlot, conf.Storage.MockLatency))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	assignment.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			CourseSvc:     courseSvc,
			AssignmentSvc: assignmentSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpSlots opens the configured storage backend and returns one slot per
// collection, plus a cleanup releasing the underlying connections.
func setUpSlots(conf *core.Config) (courses, assignments slot.Slot, cleanup func(), err error) {
	cleanup = func() {}

	switch conf.Storage.Backend {
	case "memory":
		return slot.NewMemorySlot(), slot.NewMemorySlot(), cleanup, nil

	case "file":
		dataDir := conf.Storage.DataDir
		if !filepath.IsAbs(dataDir) {
			dataDir = filepath.Join(conf.WorkDir, dataDir)
		}
		return slot.NewFileSlot(dataDir, conf.Storage.CoursesSlot),
			slot.NewFileSlot(dataDir, conf.Storage.AssignmentsSlot),
			cleanup, nil

	case "redis":
		client, rErr := slot.OpenRedis(conf)
		if rErr != nil {
			return nil, nil, cleanup, rErr
		}
		cleanup = func() { _ = client.Close() }
		return slot.NewRedisSlot(client, conf.Storage.CoursesSlot),
			slot.NewRedisSlot(client, conf.Storage.AssignmentsSlot),
			cleanup, nil

	case "postgres":
		db, dbErr := setUpDB(conf)
		if dbErr != nil {
			return nil, nil, cleanup, dbErr
		}
		cleanup = func() { _ = db.Close() }
		return slot.NewPostgresSlot(db, conf.Storage.CoursesSlot),
			slot.NewPostgresSlot(db, conf.Storage.AssignmentsSlot),
			cleanup, nil

	default:
		return nil, nil, cleanup, errors.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
