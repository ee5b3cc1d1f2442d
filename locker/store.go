// Copyright 2025 Olfact Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package locker

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/olfact/sillage/core"
)

// collectionKey is the single key the saved collection lives under. The
// value is a flat JSON array of fragrances in insertion order.
const collectionKey = "locker:collection"

// Store persists the locker collection in a BadgerDB database.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a locker store at the given path, creating the directory
// if needed. An empty path with inMemory set opens a transient database.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the persisted collection. A missing key or a value that does
// not decode yields an empty collection rather than an error.
func (s *Store) Load() ([]*core.Fragrance, error) {
	var collection []*core.Fragrance

	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(collectionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &collection); err != nil {
				s.logger.Warn("discarding corrupt locker collection", "error", err)
				collection = nil
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return collection, nil
}

// Save writes the full collection, replacing whatever was stored.
func (s *Store) Save(collection []*core.Fragrance) error {
	if collection == nil {
		collection = []*core.Fragrance{}
	}
	encoded, err := json.Marshal(collection)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(collectionKey), encoded)
	})
}
