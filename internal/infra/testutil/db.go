// Package testutil provides in-memory infrastructure for tests.
package testutil

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/receipt-split/backend/internal/infra/db"
)

var dbCounter atomic.Int64

// Db is an in-memory SQLite database with the application schema.
type Db struct {
	DbConn *gorm.DB
	models []any
	tables map[string]any
}

// NewDb opens a fresh in-memory database and migrates every application model.
// Each call gets its own database.
func NewDb() *Db {
	dsn := fmt.Sprintf("file:receipt_split_%d?mode=memory&cache=shared", dbCounter.Add(1))
	dbSQL, err := sql.Open("sqlite", dsn)
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := db.Migrate(dbConn); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	d := &Db{
		DbConn: dbConn,
		models: db.Models(),
		tables: make(map[string]any),
	}
	for _, model := range d.models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(err)
		}
		d.tables[stmt.Schema.Table] = model
	}
	return d
}

// ClearDB deletes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.models) - 1; i >= 0; i-- {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.models[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetModel returns the model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.tables[table]
	return model, ok
}

// Close closes the underlying connection.
func (d *Db) Close() error {
	sqlDB, err := d.DbConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
