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

package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// keyPattern matches safe storage keys: path-like names built from
// alphanumerics, dashes, underscores, dots and forward slashes.
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-./]+$`)

// ValidateStorageKey rejects keys that are empty, too long, or could escape
// the backend's root when mapped to a file path. File-based backends map
// keys directly onto the filesystem, so traversal here is traversal there.
func ValidateStorageKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if len(key) > 255 {
		return fmt.Errorf("%w: too long (max 255 characters)", ErrInvalidKey)
	}
	if strings.Contains(key, "\x00") {
		return fmt.Errorf("%w: contains null byte", ErrInvalidKey)
	}
	if filepath.IsAbs(key) {
		return fmt.Errorf("%w: absolute path", ErrInvalidKey)
	}
	cleaned := filepath.Clean(key)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: path traversal", ErrInvalidKey)
	}
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: invalid characters (allowed: a-z, A-Z, 0-9, -, _, ., /)", ErrInvalidKey)
	}
	return nil
}
