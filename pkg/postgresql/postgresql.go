package postgresql

import (
	"database/sql"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/tsel-ticketmaster/tm-scan/config"
)

var (
	once sync.Once
	db   *sql.DB
)

// GetDatabase returns the shared connection pool, opened lazily from
// the application config.
func GetDatabase() *sql.DB {
	once.Do(func() {
		c := config.Get()

		var err error
		db, err = sql.Open("pgx", c.PostgreSQL.DSN)
		if err != nil {
			panic(err)
		}

		db.SetMaxOpenConns(c.PostgreSQL.MaxOpenConns)
		db.SetMaxIdleConns(c.PostgreSQL.MaxIdleConns)
		db.SetConnMaxLifetime(c.PostgreSQL.ConnMaxLifetime)
	})

	return db
}
