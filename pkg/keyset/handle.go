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

import "fmt"

// Handle wraps a keyset that has passed ValidateKeyset. Holding a Handle is
// proof the keyset was structurally valid when it was obtained; all
// load/read paths in this library return handles rather than raw keysets.
type Handle struct {
	ks *Keyset
}

// NewHandle validates the keyset and wraps a deep copy of it.
func NewHandle(ks *Keyset) (*Handle, error) {
	if err := ValidateKeyset(ks); err != nil {
		return nil, err
	}
	return &Handle{ks: ks.Clone()}, nil
}

// Keyset returns a deep copy of the underlying keyset, including material.
func (h *Handle) Keyset() *Keyset {
	return h.ks.Clone()
}

// Info returns material-free metadata for the underlying keyset.
func (h *Handle) Info() *KeysetInfo {
	return h.ks.Info()
}

// Primary returns the material-free metadata of the primary key. For
// public-only keysets the primary key ID may match no enabled key; in that
// case ErrKeyNotFound is returned even though the handle itself is valid.
func (h *Handle) Primary() (*KeyInfo, error) {
	for _, k := range h.ks.Keys {
		if k.Status == KeyStatusEnabled && k.KeyID == h.ks.PrimaryKeyID {
			ki := &KeyInfo{
				KeyID:            k.KeyID,
				Status:           k.Status,
				OutputPrefixType: k.OutputPrefixType,
			}
			if k.KeyData != nil {
				ki.TypeURL = k.KeyData.TypeURL
				ki.KeyMaterialType = k.KeyData.KeyMaterialType
			}
			return ki, nil
		}
	}
	return nil, fmt.Errorf("%w: primary key %d", ErrKeyNotFound, h.ks.PrimaryKeyID)
}

// Len returns the number of keys in the keyset, including keys that are not
// ENABLED.
func (h *Handle) Len() int {
	return len(h.ks.Keys)
}
