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

// ValidateAESKeySize checks that size is an accepted AES key length in bytes.
// Only AES-128 and AES-256 are supported; AES-192 is deliberately excluded.
func ValidateAESKeySize(size uint32) error {
	if size != 16 && size != 32 {
		return fmt.Errorf("%w: AES key has %d bytes; supported sizes: 16 or 32 bytes",
			ErrInvalidArgument, size)
	}
	return nil
}

// ValidateKey checks a single key record for structural validity. Checks run
// in a fixed order and the first violation is returned: key data must be
// present, then the output prefix type and the status must not be the
// uninitialized sentinel.
func ValidateKey(key *Key) error {
	if key.KeyData == nil {
		return fmt.Errorf("%w: key %d has no key data", ErrInvalidArgument, key.KeyID)
	}

	if key.OutputPrefixType == OutputPrefixUnknown {
		return fmt.Errorf("%w: key %d has unknown prefix", ErrInvalidArgument, key.KeyID)
	}

	if key.Status == KeyStatusUnknown {
		return fmt.Errorf("%w: key %d has unknown status", ErrInvalidArgument, key.KeyID)
	}

	return nil
}

// ValidateKeyset checks a keyset for structural validity before it may be
// used to build primitives. A valid keyset contains at least one key, at
// least one ENABLED key, at most one ENABLED key whose ID matches the primary
// key ID, and either a present primary or exclusively ASYMMETRIC_PUBLIC
// material among its enabled keys.
//
// The walk is a single linear pass over the key sequence and returns the
// first violation encountered. Keys that are not ENABLED are skipped
// entirely: they are neither validated nor counted.
func ValidateKeyset(ks *Keyset) error {
	if len(ks.Keys) < 1 {
		return fmt.Errorf("%w: a valid keyset must contain at least one key",
			ErrInvalidArgument)
	}

	primaryKeyID := ks.PrimaryKeyID
	hasPrimaryKey := false
	containsOnlyPublicKeyMaterial := true
	enabledKeys := 0

	for _, key := range ks.Keys {
		if key.Status != KeyStatusEnabled {
			continue
		}
		enabledKeys++

		if err := ValidateKey(key); err != nil {
			return err
		}

		if key.Status == KeyStatusEnabled && key.KeyID == primaryKeyID {
			if hasPrimaryKey {
				return fmt.Errorf("%w: keyset contains multiple primary keys",
					ErrInvalidArgument)
			}
			hasPrimaryKey = true
		}

		if key.KeyData.KeyMaterialType != KeyMaterialAsymmetricPublic {
			containsOnlyPublicKeyMaterial = false
		}
	}

	if enabledKeys == 0 {
		return fmt.Errorf("%w: keyset must contain at least one ENABLED key",
			ErrInvalidArgument)
	}

	// A public key can be used for verification without being set as the
	// primary key, so a keyset holding only public material may omit one.
	if !hasPrimaryKey && !containsOnlyPublicKeyMaterial {
		return fmt.Errorf("%w: keyset doesn't contain a valid primary key",
			ErrInvalidArgument)
	}

	return nil
}

// ValidateVersion checks a versioned payload's declared version against the
// highest version this library understands. Guards deserialization of key
// material produced by newer releases.
func ValidateVersion(candidate, maxExpected uint32) error {
	if candidate > maxExpected {
		return fmt.Errorf("%w: key has version %d; only keys with version in range [0..%d] are supported",
			ErrInvalidArgument, candidate, maxExpected)
	}
	return nil
}
