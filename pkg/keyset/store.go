// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyset.
//
// go-keyset is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package keyset

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-keyset/pkg/logging"
	"github.com/jeremyhahn/go-keyset/pkg/metrics"
	"github.com/jeremyhahn/go-keyset/pkg/storage"
)

// storePrefix namespaces keyset blobs within the storage backend so a
// backend can be shared with other data.
const storePrefix = "keysets/"

// Store persists keysets by name over a storage.Backend. Save validates
// before writing and Load validates after reading, so a corrupt or tampered
// blob can never round-trip into a usable keyset.
type Store struct {
	backend storage.Backend
	logger  *logging.Logger
}

// NewStore creates a keyset store over the given backend.
// A nil logger falls back to the default logger.
func NewStore(backend storage.Backend, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Store{backend: backend, logger: logger}
}

// Save persists the handle's keyset under the given name. An empty name is
// replaced with a generated UUID. The (possibly generated) name is returned.
func (s *Store) Save(name string, h *Handle) (string, error) {
	start := time.Now()
	defer metrics.ObserveDuration(metrics.OpSave, start)

	if name == "" {
		name = uuid.NewString()
	}

	data, err := MarshalJSON(h)
	if err != nil {
		metrics.RecordOperation(metrics.OpSave, err)
		return "", err
	}

	if err := s.backend.Put(storePrefix+name, data, storage.DefaultOptions()); err != nil {
		metrics.RecordOperation(metrics.OpSave, err)
		return "", fmt.Errorf("keyset: saving keyset %q: %w", name, err)
	}

	metrics.RecordOperation(metrics.OpSave, nil)
	s.logger.Debug("saved keyset", "name", name, "keys", h.Len())
	return name, nil
}

// Load reads and validates the keyset stored under the given name.
func (s *Store) Load(name string) (*Handle, error) {
	start := time.Now()
	defer metrics.ObserveDuration(metrics.OpLoad, start)

	data, err := s.backend.Get(storePrefix + name)
	if err != nil {
		metrics.RecordOperation(metrics.OpLoad, err)
		return nil, fmt.Errorf("keyset: loading keyset %q: %w", name, err)
	}

	h, err := NewJSONReader(bytes.NewReader(data)).Read()
	if err != nil {
		metrics.RecordOperation(metrics.OpLoad, err)
		metrics.RecordValidationFailure(failureReason(err))
		return nil, fmt.Errorf("keyset: loading keyset %q: %w", name, err)
	}

	metrics.RecordOperation(metrics.OpLoad, nil)
	return h, nil
}

// Delete removes the keyset stored under the given name.
func (s *Store) Delete(name string) error {
	err := s.backend.Delete(storePrefix + name)
	metrics.RecordOperation(metrics.OpDelete, err)
	if err != nil {
		return fmt.Errorf("keyset: deleting keyset %q: %w", name, err)
	}
	s.logger.Debug("deleted keyset", "name", name)
	return nil
}

// List returns the names of all stored keysets in sorted order.
func (s *Store) List() ([]string, error) {
	keys, err := s.backend.List(storePrefix)
	metrics.RecordOperation(metrics.OpList, err)
	if err != nil {
		return nil, fmt.Errorf("keyset: listing keysets: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, storePrefix))
	}
	return names, nil
}

// failureReason maps a validation error to a stable metric label.
func failureReason(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "at least one ENABLED key"):
		return "no_enabled_keys"
	case strings.Contains(msg, "at least one key"):
		return "empty_keyset"
	case strings.Contains(msg, "multiple primary keys"):
		return "multiple_primary"
	case strings.Contains(msg, "valid primary key"):
		return "no_primary"
	case strings.Contains(msg, "no key data"):
		return "missing_key_data"
	case strings.Contains(msg, "unknown prefix"):
		return "unknown_prefix"
	case strings.Contains(msg, "unknown status"):
		return "unknown_status"
	case strings.Contains(msg, "version"):
		return "unsupported_version"
	default:
		return "other"
	}
}
