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
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxKeysetFormatVersion is the newest serialized keyset format version this
// library can read. Bump only when the envelope schema changes.
const MaxKeysetFormatVersion uint32 = 0

// envelope is the serialized keyset wire format. The version field lets a
// reader reject keysets written by a newer, incompatible release.
type envelope struct {
	Version uint32  `json:"version"`
	Keyset  *Keyset `json:"keyset"`
}

// Reader reads and validates a single keyset.
type Reader interface {
	// Read returns a Handle over the keyset, or an error if the data is
	// unreadable, from an unsupported format version, or structurally
	// invalid.
	Read() (*Handle, error)
}

// Writer writes a single keyset.
type Writer interface {
	Write(h *Handle) error
}

// JSONReader reads a JSON-serialized keyset from an io.Reader.
type JSONReader struct {
	r io.Reader
}

// NewJSONReader returns a Reader that decodes a JSON keyset envelope from r.
func NewJSONReader(r io.Reader) *JSONReader {
	return &JSONReader{r: r}
}

// Read decodes the envelope, checks the format version, and validates the
// keyset. The returned Handle is the only way to get at the decoded keys.
func (jr *JSONReader) Read() (*Handle, error) {
	var env envelope
	dec := json.NewDecoder(jr.r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("keyset: decoding keyset: %w", err)
	}

	if err := ValidateVersion(env.Version, MaxKeysetFormatVersion); err != nil {
		return nil, errors.Join(ErrUnsupportedVersion, err)
	}

	if env.Keyset == nil {
		return nil, fmt.Errorf("%w: envelope has no keyset", ErrInvalidArgument)
	}

	return NewHandle(env.Keyset)
}

// ParseJSON reads a keyset from a JSON byte slice.
func ParseJSON(data []byte) (*Handle, error) {
	return NewJSONReader(bytes.NewReader(data)).Read()
}
