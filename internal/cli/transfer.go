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

var (
	validateFile string
	exportFile   string
	importFile   string
)

// validateCmd validates a keyset without modifying it. With --file the
// keyset is read from a JSON file instead of the store.
var validateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Validate a keyset",
	Long: `Validate the structural integrity of a keyset. The keyset is loaded
from the store by name, or from a JSON file with --file, and checked
against the full rule set: every ENABLED key must carry key data and
known status/prefix values, at least one key must be ENABLED, and the
primary key must be unambiguous.

Exits non-zero with a diagnostic naming the offending key on failure.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, label, err := loadKeyset(args)
		if err != nil {
			handleError(err)
		}

		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintResult(
			fmt.Sprintf("keyset %s is valid (%d keys)", label, h.Len()),
			map[string]interface{}{"name": label, "valid": true, "keys": h.Len()},
		); err != nil {
			handleError(err)
		}
	},
}

// exportCmd writes a stored keyset to a JSON file or stdout.
var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a keyset as JSON",
	Long: `Export a stored keyset, including key material, as JSON. Protect the
output accordingly; exported files are written owner read/write only.`,
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

		out := os.Stdout
		if exportFile != "" {
			f, err := os.OpenFile(exportFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
			if err != nil {
				handleError(err)
			}
			defer f.Close()
			out = f
		}

		w := keyset.NewJSONWriter(out)
		w.Indent = "  "
		if err := w.Write(h); err != nil {
			handleError(err)
		}
	},
}

// importCmd reads a JSON keyset file, validates it and stores it.
var importCmd = &cobra.Command{
	Use:   "import [name]",
	Short: "Import a keyset from JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if importFile == "" {
			handleError(fmt.Errorf("--file is required"))
		}
		h, err := readKeysetFile(importFile)
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

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "",
		"validate a JSON keyset file instead of a stored keyset")
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "",
		"write to file instead of stdout")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "",
		"JSON keyset file to import (required)")
}

// loadKeyset resolves the validate command's target: a stored keyset by
// name, or a JSON file when --file is set.
func loadKeyset(args []string) (*keyset.Handle, string, error) {
	if validateFile != "" {
		h, err := readKeysetFile(validateFile)
		return h, validateFile, err
	}
	if len(args) != 1 {
		return nil, "", fmt.Errorf("a keyset name or --file is required")
	}

	store, backend, err := newStore()
	if err != nil {
		return nil, "", err
	}
	defer backend.Close()

	h, err := store.Load(args[0])
	return h, args[0], err
}

// readKeysetFile reads and validates a JSON keyset file.
func readKeysetFile(path string) (*keyset.Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return keyset.NewJSONReader(f).Read()
}
