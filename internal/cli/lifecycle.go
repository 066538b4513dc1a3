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
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-keyset/pkg/keyset"
)

// keyMutation loads a keyset, applies a manager mutation, validates and
// saves the result. All key lifecycle commands share this path.
func keyMutation(name, keyIDArg, verb string, mutate func(*keyset.Manager, uint32) error) {
	keyID, err := parseKeyID(keyIDArg)
	if err != nil {
		handleError(err)
	}

	store, backend, err := newStore()
	if err != nil {
		handleError(err)
	}
	defer backend.Close()

	h, err := store.Load(name)
	if err != nil {
		handleError(err)
	}
	mgr, err := keyset.NewManagerFromKeyset(h.Keyset())
	if err != nil {
		handleError(err)
	}
	if err := mutate(mgr, keyID); err != nil {
		handleError(err)
	}
	h, err = mgr.Handle()
	if err != nil {
		handleError(err)
	}
	if _, err := store.Save(name, h); err != nil {
		handleError(err)
	}

	printer := NewPrinter(outputFormat, os.Stdout)
	if err := printer.PrintResult(
		fmt.Sprintf("%s key %d in keyset %s", verb, keyID, name),
		map[string]interface{}{"name": name, "key_id": keyID},
	); err != nil {
		handleError(err)
	}
}

// setPrimaryCmd designates an existing enabled key as primary.
var setPrimaryCmd = &cobra.Command{
	Use:   "set-primary <name> <key-id>",
	Short: "Designate an ENABLED key as the primary key",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		keyMutation(args[0], args[1], "set primary", func(m *keyset.Manager, id uint32) error {
			return m.SetPrimary(id)
		})
	},
}

// enableCmd re-enables a disabled key.
var enableCmd = &cobra.Command{
	Use:   "enable <name> <key-id>",
	Short: "Enable a DISABLED key",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		keyMutation(args[0], args[1], "enabled", func(m *keyset.Manager, id uint32) error {
			return m.Enable(id)
		})
	},
}

// disableCmd disables a non-primary key.
var disableCmd = &cobra.Command{
	Use:   "disable <name> <key-id>",
	Short: "Disable a non-primary ENABLED key",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		keyMutation(args[0], args[1], "disabled", func(m *keyset.Manager, id uint32) error {
			return m.Disable(id)
		})
	},
}

// destroyCmd deletes a key's material and marks the record destroyed.
var destroyCmd = &cobra.Command{
	Use:   "destroy <name> <key-id>",
	Short: "Destroy a non-primary key's material",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		keyMutation(args[0], args[1], "destroyed", func(m *keyset.Manager, id uint32) error {
			return m.Destroy(id)
		})
	},
}
