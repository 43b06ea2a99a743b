package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds all the settings of the application. Values are resolved in
	// order of precedence: environment variables (prefixed with the current ENV,
	// eg. DEV_SERVERADDR), an optional `config/.env.<env>` file, then defaults.
	Config struct {
		AppName          string
		Env              string // DEV (local; default), TEST, QA, PROD
		Debug            bool
		TestMode         bool
		Build            string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		ReportRecipient  string
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Storage  StorageConfig
		Redis    RedisConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host            string
		Addr            string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	// StorageConfig selects and tunes the record store backend.
	StorageConfig struct {
		Backend         string // file (default), memory, redis or postgres
		DataDir         string // file backend; relative paths are rooted at WorkDir
		CoursesSlot     string
		AssignmentsSlot string
		MockLatency     time.Duration // simulated per-call latency; 0 disables it
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string // bootstrap only; app connections use User
		AdminPassword string
		Name          string
		DisableTLS    bool
	}
)

// Address returns the `host:port` address of the database server.
func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

// NewConfig loads the app Config for the current ENV.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "StudyFlow")
	v.SetDefault("build", "dev")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("reportRecipient", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugAddr", ":8001")
	v.SetDefault("serverShutdownTimeout", 20*time.Second)

	v.SetDefault("storageBackend", "file")
	v.SetDefault("storageDataDir", "data")
	v.SetDefault("storageCoursesSlot", "studyflow-courses")
	v.SetDefault("storageAssignmentsSlot", "studyflow-assignments")
	v.SetDefault("storageMockLatency", 300*time.Millisecond)

	v.SetDefault("redisAddr", "localhost:6379")
	v.SetDefault("redisPassword", "")
	v.SetDefault("redisDB", 0)

	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseUser", "studyflow")
	v.SetDefault("databasePassword", "")
	v.SetDefault("databaseAdminUser", "")
	v.SetDefault("databaseAdminPassword", "")
	v.SetDefault("databaseName", "studyflow")
	v.SetDefault("databaseDisableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("debug", false)
		v.SetDefault("testMode", true)
		v.SetDefault("storageMockLatency", time.Duration(0))
	}
	v.SetEnvPrefix(env)

	workDir := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Build:            v.GetString("build"),
		WorkDir:          workDir,
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		ReportRecipient:  v.GetString("reportRecipient"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Addr:            v.GetString("serverAddr"),
			DebugHost:       v.GetString("serverDebugAddr"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
		},
		Storage: StorageConfig{
			Backend:         CleanString(v.GetString("storageBackend"), true),
			DataDir:         v.GetString("storageDataDir"),
			CoursesSlot:     v.GetString("storageCoursesSlot"),
			AssignmentsSlot: v.GetString("storageAssignmentsSlot"),
			MockLatency:     v.GetDuration("storageMockLatency"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redisAddr"),
			Password: v.GetString("redisPassword"),
			DB:       v.GetInt("redisDB"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetString("databasePort"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			Name:          v.GetString("databaseName"),
			DisableTLS:    v.GetBool("databaseDisableTLS"),
		},
	}
}
