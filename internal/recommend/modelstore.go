// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

const modelKeyPrefix = "model/"

// ModelStore persists fitted models in BadgerDB so a restart over an
// unchanged dataset skips the fit. It is safe for concurrent use.
type ModelStore struct {
	db *badger.DB
}

// OpenModelStore opens (or creates) the badger directory at path.
func OpenModelStore(path string) (*ModelStore, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create model cache directory: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Compression = options.Snappy
	opts.NumVersionsToKeep = 1
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open model cache: %w", err)
	}
	return &ModelStore{db: db}, nil
}

// Close closes the underlying database.
func (s *ModelStore) Close() error {
	return s.db.Close()
}

// modelKey identifies a model by dataset checksum and vectorizer settings.
func modelKey(checksum string, cfg algorithms.TFIDFConfig) []byte {
	return []byte(fmt.Sprintf("%s%s/%d/%d", modelKeyPrefix, checksum, cfg.MinDF, cfg.MaxNgram))
}

// Get returns the model stored for checksum and cfg. found is false when
// there is none.
func (s *ModelStore) Get(checksum string, cfg algorithms.TFIDFConfig) (data *algorithms.ModelData, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(modelKey(checksum, cfg))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get model: %w", err)
		}

		return item.Value(func(val []byte) error {
			var md algorithms.ModelData
			if err := json.Unmarshal(val, &md); err != nil {
				return fmt.Errorf("decode model: %w", err)
			}
			data, found = &md, true
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}
	return data, found, nil
}

// Put stores data as the only model. Models of earlier datasets are removed.
func (s *ModelStore) Put(checksum string, cfg algorithms.TFIDFConfig, data *algorithms.ModelData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	key := modelKey(checksum, cfg)
	stale, err := s.keys()
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, k := range stale {
			if string(k) == string(key) {
				continue
			}
			if err := txn.Delete(k); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete stale model: %w", err)
			}
		}
		if err := txn.Set(key, payload); err != nil {
			return fmt.Errorf("set model: %w", err)
		}
		return nil
	})
}

// keys lists the stored model keys.
func (s *ModelStore) keys() ([][]byte, error) {
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(modelKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return keys, nil
}

// Len returns the number of stored models.
func (s *ModelStore) Len() (int, error) {
	keys, err := s.keys()
	return len(keys), err
}
