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

package keyset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-keyset/pkg/keyset"
	"github.com/jeremyhahn/go-keyset/pkg/storage"
	"github.com/jeremyhahn/go-keyset/pkg/storage/memory"
)

func newTestHandle(t *testing.T) *keyset.Handle {
	t.Helper()
	mgr := keyset.NewManager()
	_, err := mgr.Rotate(keyset.AES256GCMTemplate())
	require.NoError(t, err)
	h, err := mgr.Handle()
	require.NoError(t, err)
	return h
}

func TestStoreSaveLoad(t *testing.T) {
	backend := memory.New()
	defer backend.Close()
	store := keyset.NewStore(backend, nil)

	h := newTestHandle(t)
	name, err := store.Save("primary-keyset", h)
	require.NoError(t, err)
	assert.Equal(t, "primary-keyset", name)

	got, err := store.Load("primary-keyset")
	require.NoError(t, err)
	assert.Equal(t, h.Keyset(), got.Keyset())
}

func TestStoreGeneratesUUIDName(t *testing.T) {
	backend := memory.New()
	defer backend.Close()
	store := keyset.NewStore(backend, nil)

	name, err := store.Save("", newTestHandle(t))
	require.NoError(t, err)
	assert.NotEmpty(t, name)

	_, err = store.Load(name)
	require.NoError(t, err)
}

func TestStoreListDelete(t *testing.T) {
	backend := memory.New()
	defer backend.Close()
	store := keyset.NewStore(backend, nil)

	_, err := store.Save("alpha", newTestHandle(t))
	require.NoError(t, err)
	_, err = store.Save("beta", newTestHandle(t))
	require.NoError(t, err)

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	require.NoError(t, store.Delete("alpha"))
	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)

	err = store.Delete("alpha")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreLoadMissing(t *testing.T) {
	backend := memory.New()
	defer backend.Close()
	store := keyset.NewStore(backend, nil)

	_, err := store.Load("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreLoadRejectsTamperedBlob(t *testing.T) {
	backend := memory.New()
	defer backend.Close()
	store := keyset.NewStore(backend, nil)

	// A blob that decodes but fails validation must not load.
	tampered := []byte(`{"version": 0, "keyset": {"primary_key_id": 1, "key": []}}`)
	require.NoError(t, backend.Put("keysets/evil", tampered, storage.DefaultOptions()))

	_, err := store.Load("evil")
	require.Error(t, err)
	assert.ErrorIs(t, err, keyset.ErrInvalidArgument)
}
