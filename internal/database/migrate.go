package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrateUp applies all pending migrations from the given directory against
// the MySQL database described by the credentials.  A database that is
// already at the latest version is not an error.
func MigrateUp(path, user, pass, host, port, name string) error {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	url := fmt.Sprintf("mysql://%s@tcp(%s:%s)/%s", auth, host, port, name)

	m, err := migrate.New("file://"+path, url)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("migrations: no change")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	log.Println("migrations: up completed")
	return nil
}
