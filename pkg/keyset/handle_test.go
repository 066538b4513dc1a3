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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandleValidates(t *testing.T) {
	_, err := NewHandle(&Keyset{PrimaryKeyID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	h, err := NewHandle(&Keyset{
		PrimaryKeyID: 1,
		Keys:         []*Key{testKey(1, KeyStatusEnabled, KeyMaterialSymmetric)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, h.Len())
}

func TestHandleKeysetIsACopy(t *testing.T) {
	src := &Keyset{
		PrimaryKeyID: 1,
		Keys:         []*Key{testKey(1, KeyStatusEnabled, KeyMaterialSymmetric)},
	}
	h, err := NewHandle(src)
	require.NoError(t, err)

	// mutating the source after handle creation must not affect the handle
	src.Keys[0].Status = KeyStatusUnknown
	assert.Equal(t, KeyStatusEnabled, h.Keyset().Keys[0].Status)

	// mutating an extracted keyset must not affect the handle
	ks := h.Keyset()
	ks.Keys[0].Status = KeyStatusDisabled
	assert.Equal(t, KeyStatusEnabled, h.Keyset().Keys[0].Status)
}

func TestHandlePrimary(t *testing.T) {
	h, err := NewHandle(&Keyset{
		PrimaryKeyID: 2,
		Keys: []*Key{
			testKey(1, KeyStatusDisabled, KeyMaterialSymmetric),
			testKey(2, KeyStatusEnabled, KeyMaterialSymmetric),
		},
	})
	require.NoError(t, err)

	primary, err := h.Primary()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), primary.KeyID)
	assert.Equal(t, AESGCMTypeURL, primary.TypeURL)
}

func TestHandlePublicOnlyKeysetHasNoPrimary(t *testing.T) {
	// A verification keyset: only public material, primary matches no key.
	h, err := NewHandle(&Keyset{
		PrimaryKeyID: 99,
		Keys: []*Key{
			testKey(1, KeyStatusEnabled, KeyMaterialAsymmetricPublic),
			testKey(2, KeyStatusEnabled, KeyMaterialAsymmetricPublic),
		},
	})
	require.NoError(t, err)

	_, err = h.Primary()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
