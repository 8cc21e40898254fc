package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/te6695/LibraryWebAPI/internals/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// A single pooled connection keeps writes serialized the way the shared
// Postgres instance would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared&_busy_timeout=10000", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.Borrower{}, &models.Loan{}))
	return db
}

func seedBook(t *testing.T, db *gorm.DB, total, available int) *models.Book {
	t.Helper()
	book := models.Book{
		Title:           "The Go Programming Language",
		Author:          "Donovan & Kernighan",
		IsBn:            fmt.Sprintf("978-01341902%02d", testDBCounter.Add(1)%100),
		TotalCopies:     total,
		AvailableCopies: available,
	}
	require.NoError(t, db.Create(&book).Error)
	return &book
}

func seedBorrower(t *testing.T, db *gorm.DB) *models.Borrower {
	t.Helper()
	borrower := models.Borrower{
		Name:  "Ada Lovelace",
		Email: fmt.Sprintf("ada%d@example.com", testDBCounter.Add(1)),
	}
	require.NoError(t, db.Create(&borrower).Error)
	return &borrower
}
