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
	"fmt"
	"io"
)

// JSONWriter writes a JSON-serialized keyset to an io.Writer.
type JSONWriter struct {
	w io.Writer

	// Indent pretty-prints the output when non-empty.
	Indent string
}

// NewJSONWriter returns a Writer that encodes a JSON keyset envelope to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// Write encodes the handle's keyset in the current format version. A Handle
// is required rather than a raw keyset so only validated keysets ever hit
// the wire.
func (jw *JSONWriter) Write(h *Handle) error {
	env := envelope{
		Version: MaxKeysetFormatVersion,
		Keyset:  h.Keyset(),
	}
	enc := json.NewEncoder(jw.w)
	if jw.Indent != "" {
		enc.SetIndent("", jw.Indent)
	}
	if err := enc.Encode(&env); err != nil {
		return fmt.Errorf("keyset: encoding keyset: %w", err)
	}
	return nil
}

// MarshalJSON serializes a handle's keyset to a JSON byte slice.
func MarshalJSON(h *Handle) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewJSONWriter(&buf).Write(h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
