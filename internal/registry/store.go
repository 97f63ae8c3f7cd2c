// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mythograph/mythograph/internal/metrics"
	"github.com/mythograph/mythograph/internal/models"
)

// ErrNotFound means no record exists under the requested id.
var ErrNotFound = errors.New("registry: record not found")

// Key prefixes for BadgerDB storage
const (
	basemapKeyPrefix    = "bm:"
	worldModelKeyPrefix = "wm:"
)

// Store is the persistence interface the HTTP boundary programs against.
type Store interface {
	GetBasemap(ctx context.Context, id string) (*models.Basemap, error)
	PutBasemap(ctx context.Context, bm *models.Basemap) error
	DeleteBasemap(ctx context.Context, id string) error
	ListBasemaps(ctx context.Context) ([]*models.Basemap, error)

	GetWorldModel(ctx context.Context, id string) (*models.WorldModel, error)
	PutWorldModel(ctx context.Context, wm *models.WorldModel) error
	DeleteWorldModel(ctx context.Context, id string) error
	ListWorldModels(ctx context.Context) ([]*models.WorldModel, error)

	Close() error
}

// NewID mints a record id with a type prefix, e.g. "bm-1b4e28ba...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// BadgerStore implements Store on a BadgerDB database.
type BadgerStore struct {
	db *badger.DB
}

// Open opens (or creates) the registry database at path. An empty path
// opens an in-memory database, used by tests and throwaway deployments.
func Open(path string) (*BadgerStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
		opts.ValueLogFileSize = 16 << 20
		opts.SyncWrites = true
	}
	opts.Logger = nil // Suppress BadgerDB internal logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open registry db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewFromDB wraps an existing BadgerDB connection, useful when sharing one
// database across stores.
func NewFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// GetBasemap retrieves a basemap record by id.
func (s *BadgerStore) GetBasemap(ctx context.Context, id string) (*models.Basemap, error) {
	var bm models.Basemap
	if err := s.get(basemapKeyPrefix+id, &bm); err != nil {
		metrics.RegistryOperations.WithLabelValues("get_basemap", outcome(err)).Inc()
		return nil, err
	}
	metrics.RegistryOperations.WithLabelValues("get_basemap", "success").Inc()
	return &bm, nil
}

// PutBasemap creates or replaces a basemap record. A missing id is minted;
// timestamps are maintained here so callers never touch them.
func (s *BadgerStore) PutBasemap(ctx context.Context, bm *models.Basemap) error {
	now := time.Now().UTC()
	if bm.ID == "" {
		bm.ID = NewID("bm")
		bm.CreatedAt = now
	}
	if bm.CreatedAt.IsZero() {
		bm.CreatedAt = now
	}
	bm.UpdatedAt = now

	err := s.put(basemapKeyPrefix+bm.ID, bm)
	metrics.RegistryOperations.WithLabelValues("put_basemap", outcome(err)).Inc()
	return err
}

// DeleteBasemap removes a basemap record. The backing tile files or feature
// data are untouched. Deleting a missing record is ErrNotFound.
func (s *BadgerStore) DeleteBasemap(ctx context.Context, id string) error {
	err := s.delete(basemapKeyPrefix + id)
	metrics.RegistryOperations.WithLabelValues("delete_basemap", outcome(err)).Inc()
	return err
}

// ListBasemaps returns every basemap record, unordered.
func (s *BadgerStore) ListBasemaps(ctx context.Context) ([]*models.Basemap, error) {
	var out []*models.Basemap
	err := s.list(basemapKeyPrefix, func(val []byte) error {
		var bm models.Basemap
		if err := json.Unmarshal(val, &bm); err != nil {
			return err
		}
		out = append(out, &bm)
		return nil
	})
	metrics.RegistryOperations.WithLabelValues("list_basemaps", outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetWorldModel retrieves a world-model record by id.
func (s *BadgerStore) GetWorldModel(ctx context.Context, id string) (*models.WorldModel, error) {
	var wm models.WorldModel
	if err := s.get(worldModelKeyPrefix+id, &wm); err != nil {
		metrics.RegistryOperations.WithLabelValues("get_worldmodel", outcome(err)).Inc()
		return nil, err
	}
	metrics.RegistryOperations.WithLabelValues("get_worldmodel", "success").Inc()
	return &wm, nil
}

// PutWorldModel creates or replaces a world-model record.
func (s *BadgerStore) PutWorldModel(ctx context.Context, wm *models.WorldModel) error {
	now := time.Now().UTC()
	if wm.ID == "" {
		wm.ID = NewID("wm")
		wm.CreatedAt = now
	}
	if wm.CreatedAt.IsZero() {
		wm.CreatedAt = now
	}
	wm.UpdatedAt = now

	err := s.put(worldModelKeyPrefix+wm.ID, wm)
	metrics.RegistryOperations.WithLabelValues("put_worldmodel", outcome(err)).Inc()
	return err
}

// DeleteWorldModel removes a world-model record. Basemaps referencing it
// keep their reference; resolution of a dangling reference is the caller's
// concern.
func (s *BadgerStore) DeleteWorldModel(ctx context.Context, id string) error {
	err := s.delete(worldModelKeyPrefix + id)
	metrics.RegistryOperations.WithLabelValues("delete_worldmodel", outcome(err)).Inc()
	return err
}

// ListWorldModels returns every world-model record, unordered.
func (s *BadgerStore) ListWorldModels(ctx context.Context) ([]*models.WorldModel, error) {
	var out []*models.WorldModel
	err := s.list(worldModelKeyPrefix, func(val []byte) error {
		var wm models.WorldModel
		if err := json.Unmarshal(val, &wm); err != nil {
			return err
		}
		out = append(out, &wm)
		return nil
	})
	metrics.RegistryOperations.WithLabelValues("list_worldmodels", outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) get(key string, dst interface{}) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("registry get: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
}

func (s *BadgerStore) put(key string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("registry marshal: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *BadgerStore) delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("registry delete: %w", err)
		}
		return txn.Delete([]byte(key))
	})
}

func (s *BadgerStore) list(prefix string, visit func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(visit); err != nil {
				return err
			}
		}
		return nil
	})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
