// Package testdb opens an isolated in-memory SQLite database per test and
// provides small fixtures shared by the package tests.
package testdb

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"sabores/configs"
	"sabores/entity"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

// New returns a migrated database that lives until the test finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := configs.Open("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the shared in-memory db alive and avoids table locks
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

// File returns a migrated database backed by a file in the test's temp dir,
// with the default connection pool. Use it when several goroutines write at once.
func File(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := configs.Open("sqlite", filepath.Join(t.TempDir(), "sabores.db"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

func User(t testing.TB, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Name: email, Role: role, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Category(t testing.TB, db *gorm.DB, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name, IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

// MenuItem creates an item in a fresh "Bebidas" category.
func MenuItem(t testing.TB, db *gorm.DB, name, price string, available bool) *entity.MenuItem {
	t.Helper()
	cat := Category(t, db, "Bebidas "+name)
	m := &entity.MenuItem{
		Name:            name,
		Price:           entity.MustMoney(price),
		IsAvailable:     available,
		PreparationTime: 15,
		CategoryID:      cat.ID,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func SetPrice(t testing.TB, db *gorm.DB, id uint, price string) {
	t.Helper()
	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", id).
		Update("price", entity.MustMoney(price)).Error)
}
