package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/swayops/portal/config"
	"github.com/swayops/portal/internal/store"
)

const backupTimestamp = "2006-01-02T15-04-05"

// backupDatabase copies the local db into a timestamped directory under
// dir. It opens the db itself, so it can't run next to a live server.
func backupDatabase(cfg *config.Config, dir string) (string, error) {
	db, err := store.OpenBolt(cfg.DBPath, cfg.DBName, cfg.Buckets()...)
	if err != nil {
		return "", err
	}
	defer db.Close()

	dbPath := filepath.Join(dir, time.Now().UTC().Format(backupTimestamp))
	if err = os.MkdirAll(dbPath, 0700); err != nil {
		return "", err
	}

	dbFilePath := filepath.Join(dbPath, cfg.DBName+".db")
	if err = db.CopyTo(dbFilePath); err != nil {
		return "", err
	}

	log.Printf(`successfully backed up "%s.db" to %q.`, cfg.DBName, dbFilePath)
	return dbFilePath, nil
}
