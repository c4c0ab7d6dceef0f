package db

import (
	"database/sql"
	"strings"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is the database/sql driver behind SQLiteDialector.
const SQLiteDriverName = "sqlite3_library"

var registerSQLite sync.Once

// SQLiteDialector opens dsn with a driver whose LOWER folds every Unicode
// letter. The built-in one only folds ASCII, which breaks title search for
// Cyrillic or accented titles.
func SQLiteDialector(dsn string) gorm.Dialector {
	registerSQLite.Do(func() {
		sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", strings.ToLower, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: SQLiteDriverName, DSN: dsn})
}
