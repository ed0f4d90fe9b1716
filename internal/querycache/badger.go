// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package querycache

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

const (
	badgerDir = "badger"
	keyPrefix = "query:"
)

// Badger is a durable cache backed by BadgerDB.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens or creates a BadgerDB cache under dir/badger.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(filepath.Join(dir, badgerDir))
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger cache: %w", err)
	}
	return &Badger{db: db}, nil
}

// NewBadger wraps an already open database.
func NewBadger(db *badger.DB) *Badger {
	return &Badger{db: db}
}

// Get implements Cache.
func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put implements Cache.
func (b *Badger) Put(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyPrefix+key), value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

// Close implements Cache.
func (b *Badger) Close() error {
	return b.db.Close()
}
