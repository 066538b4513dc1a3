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

import "errors"

var (
	// ErrInvalidArgument is the kind wrapped by every validation failure.
	// Callers check it with errors.Is; the wrapped message carries the
	// specific violation and the offending key ID where applicable.
	ErrInvalidArgument = errors.New("keyset: invalid argument")

	// ErrKeyNotFound is returned when a key ID does not exist in the keyset.
	ErrKeyNotFound = errors.New("keyset: key not found")

	// ErrUnsupportedTemplate is returned when a key template's type URL is
	// not recognized by the manager.
	ErrUnsupportedTemplate = errors.New("keyset: unsupported key template")

	// ErrUnsupportedVersion is returned by readers when a serialized keyset
	// declares a format version newer than this library supports.
	ErrUnsupportedVersion = errors.New("keyset: unsupported keyset format version")
)
