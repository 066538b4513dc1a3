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
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
)

// Manager builds and mutates keysets. Every mutation leaves the managed
// keyset in a state that still satisfies ValidateKeyset, or is rejected;
// Keyset and Handle re-validate before handing anything out, so a Manager
// can never produce an unusable keyset.
//
// A Manager is safe for concurrent use.
type Manager struct {
	mu sync.Mutex
	ks *Keyset
}

// NewManager returns a manager over an empty keyset. Rotate must be called
// at least once before Keyset or Handle will succeed.
func NewManager() *Manager {
	return &Manager{ks: &Keyset{}}
}

// NewManagerFromKeyset returns a manager over an existing keyset.
// The keyset is validated and deep-copied; the caller's copy is not retained.
func NewManagerFromKeyset(ks *Keyset) (*Manager, error) {
	if err := ValidateKeyset(ks); err != nil {
		return nil, err
	}
	return &Manager{ks: ks.Clone()}, nil
}

// Generate adds a new ENABLED key built from the template and returns its
// key ID. The new key does not become primary; use Rotate for that.
func (m *Manager) Generate(tmpl Template) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generate(tmpl)
}

// Rotate adds a new key built from the template and promotes it to primary.
func (m *Manager) Rotate(tmpl Template) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.generate(tmpl)
	if err != nil {
		return 0, err
	}
	m.ks.PrimaryKeyID = id
	return id, nil
}

// SetPrimary designates an existing ENABLED key as the primary key.
func (m *Manager) SetPrimary(keyID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.find(keyID)
	if key == nil {
		return fmt.Errorf("%w: key %d", ErrKeyNotFound, keyID)
	}
	if key.Status != KeyStatusEnabled {
		return fmt.Errorf("%w: key %d is not ENABLED and cannot be primary",
			ErrInvalidArgument, keyID)
	}
	m.ks.PrimaryKeyID = keyID
	return nil
}

// Enable marks a DISABLED key as ENABLED. Destroyed keys cannot be
// re-enabled; their material is gone.
func (m *Manager) Enable(keyID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.find(keyID)
	if key == nil {
		return fmt.Errorf("%w: key %d", ErrKeyNotFound, keyID)
	}
	switch key.Status {
	case KeyStatusEnabled:
		return nil
	case KeyStatusDisabled:
		key.Status = KeyStatusEnabled
		return nil
	default:
		return fmt.Errorf("%w: key %d has status %s and cannot be enabled",
			ErrInvalidArgument, keyID, key.Status)
	}
}

// Disable marks an ENABLED key as DISABLED. The primary key cannot be
// disabled; promote another key first.
func (m *Manager) Disable(keyID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keyID == m.ks.PrimaryKeyID {
		return fmt.Errorf("%w: cannot disable primary key %d",
			ErrInvalidArgument, keyID)
	}
	key := m.find(keyID)
	if key == nil {
		return fmt.Errorf("%w: key %d", ErrKeyNotFound, keyID)
	}
	if key.Status != KeyStatusEnabled {
		return fmt.Errorf("%w: key %d has status %s and cannot be disabled",
			ErrInvalidArgument, keyID, key.Status)
	}
	key.Status = KeyStatusDisabled
	return nil
}

// Destroy deletes a key's material and marks the record DESTROYED. The
// record remains so the key ID is never reused. The primary key cannot be
// destroyed.
func (m *Manager) Destroy(keyID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keyID == m.ks.PrimaryKeyID {
		return fmt.Errorf("%w: cannot destroy primary key %d",
			ErrInvalidArgument, keyID)
	}
	key := m.find(keyID)
	if key == nil {
		return fmt.Errorf("%w: key %d", ErrKeyNotFound, keyID)
	}
	if key.Status == KeyStatusDestroyed {
		return nil
	}
	if key.KeyData != nil {
		key.KeyData.Value = nil
	}
	key.Status = KeyStatusDestroyed
	return nil
}

// Keyset validates the managed keyset and returns a deep copy of it.
func (m *Manager) Keyset() (*Keyset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ValidateKeyset(m.ks); err != nil {
		return nil, err
	}
	return m.ks.Clone(), nil
}

// Handle validates the managed keyset and returns a Handle over a deep copy.
func (m *Manager) Handle() (*Handle, error) {
	ks, err := m.Keyset()
	if err != nil {
		return nil, err
	}
	return &Handle{ks: ks}, nil
}

// generate adds a new key; callers hold m.mu.
func (m *Manager) generate(tmpl Template) (uint32, error) {
	if err := tmpl.Validate(); err != nil {
		return 0, err
	}
	switch tmpl.TypeURL {
	case AESGCMTypeURL, Ed25519PrivateTypeURL, Ed25519PublicTypeURL:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedTemplate, tmpl.TypeURL)
	}

	material := make([]byte, tmpl.KeySize)
	if _, err := rand.Read(material); err != nil {
		return 0, fmt.Errorf("keyset: generating key material: %w", err)
	}

	id, err := m.newKeyID()
	if err != nil {
		return 0, err
	}

	m.ks.Keys = append(m.ks.Keys, &Key{
		KeyID:            id,
		Status:           KeyStatusEnabled,
		OutputPrefixType: tmpl.OutputPrefixType,
		KeyData: &KeyData{
			TypeURL:         tmpl.TypeURL,
			Value:           material,
			KeyMaterialType: tmpl.KeyMaterialType,
		},
	})
	return id, nil
}

// newKeyID draws random 4-byte IDs until one is nonzero and unused.
func (m *Manager) newKeyID() (uint32, error) {
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("keyset: generating key ID: %w", err)
		}
		id := binary.BigEndian.Uint32(buf[:])
		if id == 0 || m.find(id) != nil {
			continue
		}
		return id, nil
	}
}

// find returns the key with the given ID, or nil; callers hold m.mu.
func (m *Manager) find(keyID uint32) *Key {
	for _, k := range m.ks.Keys {
		if k.KeyID == keyID {
			return k
		}
	}
	return nil
}
