package storage

import "fmt"

// NewStore opens the store matching the configured driver.
func NewStore(driver, url string) (Store, error) {
	switch driver {
	case "postgres":
		return NewPostgresStore(url)
	case "sqlite3":
		return NewSQLiteStore(url)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
