// Package appfs exposes the application's embedded assets: the bundled seed
// dataset, the database migrations and the email templates.
package appfs

import "embed"

//go:embed migrations seed all:templates
var FS embed.FS

// Asset paths within FS.
const (
	MigrationsDir = "migrations"

	SeedCoursesPath     = "seed/courses.json"
	SeedAssignmentsPath = "seed/assignments.json"

	EmailTemplatesDir = "templates/email"
)
