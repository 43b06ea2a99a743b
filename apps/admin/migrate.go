package main

import (
	"github.com/trezcool/goose"

	appfs "github.com/apper-canvas/studyflow-band-boost/fs"
)

var gooseRunFunc = goose.RunFS // mockable

// migrate hands args over to goose; args[0] is the goose command. It targets
// the postgres database even when another storage backend is configured.
func (cli *commandLine) migrate(args []string) error {
	db := cli.db
	if db == nil {
		sqlxDB, err := openDB(cli.conf)
		if err != nil {
			return err
		}
		defer func() { _ = sqlxDB.Close() }()
		db = sqlxDB.DB
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], db, appfs.FS, appfs.MigrationsDir, arguments...)
}
