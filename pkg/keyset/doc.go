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

// Package keyset models keysets (ordered collections of key records with a
// designated primary key) and validates their structural integrity before
// they may be used to build cryptographic primitives.
//
// The validators are pure functions over in-memory records:
//
//   - ValidateAESKeySize rejects AES key lengths other than 16 or 32 bytes.
//   - ValidateKey rejects keys missing key data or carrying the UNKNOWN
//     sentinel for status or output prefix type.
//   - ValidateKeyset rejects empty keysets, keysets without an ENABLED key,
//     keysets with multiple enabled primaries, and keysets without a usable
//     primary (unless all enabled material is ASYMMETRIC_PUBLIC).
//   - ValidateVersion rejects versioned payloads newer than the caller
//     supports.
//
// All failures wrap ErrInvalidArgument, check it with errors.Is. The first
// violation encountered is returned; nothing is aggregated.
//
// Around the validators the package provides the machinery a keyset needs
// over its lifetime: Manager builds and mutates keysets, Handle wraps
// validated ones, Reader/Writer serialize them, and Store persists them over
// a storage.Backend. Every path that produces a usable keyset runs
// ValidateKeyset first.
package keyset
