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

package cli

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-keyset/pkg/keyset"
)

// templateNames lists the template identifiers accepted by --template.
const templateNames = "aes128-gcm, aes256-gcm, aes256-gcm-raw, ed25519, ed25519-public"

// parseTemplate maps a --template flag value to a key template.
func parseTemplate(name string) (keyset.Template, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "aes128-gcm":
		return keyset.AES128GCMTemplate(), nil
	case "aes256-gcm":
		return keyset.AES256GCMTemplate(), nil
	case "aes256-gcm-raw":
		return keyset.AES256GCMRawTemplate(), nil
	case "ed25519":
		return keyset.Ed25519Template(), nil
	case "ed25519-public":
		return keyset.Ed25519PublicTemplate(), nil
	default:
		return keyset.Template{}, fmt.Errorf("unknown template %q (supported: %s)",
			name, templateNames)
	}
}
