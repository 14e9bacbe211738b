package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zakat-manager/backend/internal/infra/db"
)

var (
	dbOnce   sync.Once
	sharedDb *Db
)

// Db is the in-memory SQLite database behind the feature tests. The schema comes
// from the same migration the service runs against PostgreSQL.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	schema string
}

// NewDb opens the shared database on first use. Models are keyed by table name and
// are what the table assertions query.
func NewDb(schema string, models map[string]any) *Db {
	dbOnce.Do(func() {
		sharedDb = open(schema, models)
	})
	return sharedDb
}

func open(schema string, models map[string]any) *Db {
	conn, err := sql.Open("sqlite", "file:"+schema+"?mode=memory&cache=shared")
	if err != nil {
		panic(err)
	}
	// One connection keeps the in-memory database and its pragmas alive.
	conn.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	// Rows are wiped table by table between scenarios.
	if err := gormDB.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(gormDB); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %s", err))
	}

	d := &Db{
		DbConn: gormDB,
		models: models,
		schema: schema,
	}
	if err := d.checkTables(); err != nil {
		panic(err)
	}
	return d
}

// ClearDB deletes every row of the registered tables, soft-deleted rows included.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) checkTables() error {
	for table, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
