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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-keyset/pkg/keyset"
)

var createTemplate string

// createCmd creates a new keyset from a template and stores it.
var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new keyset",
	Long: `Create a new keyset with a single primary key generated from the
given template. If no name is given, a UUID is generated.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tmpl, err := parseTemplate(createTemplate)
		if err != nil {
			handleError(err)
		}

		mgr := keyset.NewManager()
		if _, err := mgr.Rotate(tmpl); err != nil {
			handleError(err)
		}
		h, err := mgr.Handle()
		if err != nil {
			handleError(err)
		}

		store, backend, err := newStore()
		if err != nil {
			handleError(err)
		}
		defer backend.Close()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		name, err = store.Save(name, h)
		if err != nil {
			handleError(err)
		}

		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintKeysetInfo(name, h.Info()); err != nil {
			handleError(err)
		}
	},
}

// listCmd lists stored keysets.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored keysets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, backend, err := newStore()
		if err != nil {
			handleError(err)
		}
		defer backend.Close()

		names, err := store.List()
		if err != nil {
			handleError(err)
		}
		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintKeysetList(names); err != nil {
			handleError(err)
		}
	},
}

// inspectCmd prints material-free keyset metadata.
var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Show keyset metadata",
	Long: `Show the material-free metadata of a stored keyset: its primary key
ID and, per key, the key ID, status, output prefix type, material type
and type URL. Key material is never printed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, backend, err := newStore()
		if err != nil {
			handleError(err)
		}
		defer backend.Close()

		h, err := store.Load(args[0])
		if err != nil {
			handleError(err)
		}
		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintKeysetInfo(args[0], h.Info()); err != nil {
			handleError(err)
		}
	},
}

var rotateTemplate string

// rotateCmd generates a new key and promotes it to primary.
var rotateCmd = &cobra.Command{
	Use:   "rotate <name>",
	Short: "Rotate a keyset to a new primary key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tmpl, err := parseTemplate(rotateTemplate)
		if err != nil {
			handleError(err)
		}

		store, backend, err := newStore()
		if err != nil {
			handleError(err)
		}
		defer backend.Close()

		h, err := store.Load(args[0])
		if err != nil {
			handleError(err)
		}
		mgr, err := keyset.NewManagerFromKeyset(h.Keyset())
		if err != nil {
			handleError(err)
		}
		id, err := mgr.Rotate(tmpl)
		if err != nil {
			handleError(err)
		}
		h, err = mgr.Handle()
		if err != nil {
			handleError(err)
		}
		if _, err := store.Save(args[0], h); err != nil {
			handleError(err)
		}

		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintResult(
			fmt.Sprintf("rotated keyset %s, new primary key %d", args[0], id),
			map[string]interface{}{"name": args[0], "primary_key_id": id},
		); err != nil {
			handleError(err)
		}
	},
}

func init() {
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "aes256-gcm",
		"key template ("+templateNames+")")
	rotateCmd.Flags().StringVarP(&rotateTemplate, "template", "t", "aes256-gcm",
		"key template ("+templateNames+")")
}

// parseKeyID parses a decimal key ID argument.
func parseKeyID(arg string) (uint32, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid key ID %q: %w", arg, err)
	}
	return uint32(id), nil
}
