// Package iostore keeps a local registry of fetched download archives in
// an embedded SQLite database, so past downloads stay citable without
// asking the service again.
package iostore

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gnuuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Archive is one fetched download archive on disk.
type Archive struct {
	// ID is a stable UUIDv5 digest of the request key.
	ID string `gorm:"primaryKey"`

	// Key is the request key assigned by the service.
	Key string `gorm:"uniqueIndex"`

	// DOI is the citable identifier minted for the download.
	DOI string

	// Path is the archive's location on the local filesystem.
	Path string

	// Size is the archive size in bytes.
	Size int64

	// RecordCount is the number of records the service reported.
	RecordCount int64

	FetchedAt time.Time
}

// Store is the registry handle.
type Store struct {
	db *gorm.DB
}

// New opens (and if necessary creates) the registry database at path.
func New(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, OpenError(path, err)
	}
	if err := db.AutoMigrate(&Archive{}); err != nil {
		return nil, OpenError(path, err)
	}

	slog.Debug("Download registry opened", "path", path)
	return &Store{db: db}, nil
}

// Save records a fetched archive, replacing any previous entry for the
// same request key.
func (s *Store) Save(arch Archive) error {
	arch.ID = gnuuid.New(arch.Key).String()
	if arch.FetchedAt.IsZero() {
		arch.FetchedAt = time.Now()
	}

	err := s.db.
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&arch).Error
	if err != nil {
		return QueryError(err)
	}
	return nil
}

// Get returns the registry entry for a request key; found reports
// whether one exists.
func (s *Store) Get(key string) (Archive, bool, error) {
	var res Archive
	err := s.db.Where("key = ?", key).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res, false, nil
	}
	if err != nil {
		return res, false, QueryError(err)
	}
	return res, true, nil
}

// List returns all registered archives, most recently fetched first.
func (s *Store) List() ([]Archive, error) {
	var res []Archive
	err := s.db.Order("fetched_at desc").Find(&res).Error
	if err != nil {
		return nil, QueryError(err)
	}
	return res, nil
}

// Delete removes the entry for a request key. The archive file itself is
// the caller's to remove.
func (s *Store) Delete(key string) error {
	err := s.db.Where("key = ?", key).Delete(&Archive{}).Error
	if err != nil {
		return QueryError(err)
	}
	return nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return QueryError(err)
	}
	return db.Close()
}
