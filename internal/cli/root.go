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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-keyset/internal/config"
	"github.com/jeremyhahn/go-keyset/pkg/keyset"
	"github.com/jeremyhahn/go-keyset/pkg/logging"
	"github.com/jeremyhahn/go-keyset/pkg/storage"
	"github.com/jeremyhahn/go-keyset/pkg/storage/file"
	"github.com/jeremyhahn/go-keyset/pkg/storage/memory"
)

var (
	configFile   string
	outputFormat string
	debug        bool

	cfg    *config.Config
	logger *logging.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "keyset",
	Short: "keyset CLI - Keyset validation and lifecycle tool",
	Long: `keyset CLI creates, validates, inspects and rotates keysets.

A keyset is an ordered collection of key records with a designated
primary key. Every command that produces or loads a keyset runs the
structural validator first: a keyset without key data, with an UNKNOWN
status or prefix, without an ENABLED key, or without an unambiguous
primary key is rejected before it can be used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if outputFormat == "" {
			outputFormat = cfg.Output.Format
		}
		logger = logging.NewLogger(debug || cfg.Logging.Debug)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.keyset/keyset.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "verbose", "v", false,
		"verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(setPrimaryCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// newStore opens the configured storage backend and wraps it in a keyset
// store. The caller owns the returned backend and must close it.
func newStore() (*keyset.Store, storage.Backend, error) {
	var backend storage.Backend
	switch cfg.Storage.Backend {
	case "memory":
		backend = memory.New()
	case "file":
		path, err := expandHome(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		backend, err = file.New(path)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	return keyset.NewStore(backend, logger), backend, nil
}

// expandHome resolves a leading ~/ against the current user's home directory.
func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(outputFormat, os.Stderr)
	_ = printer.PrintError(err)
	os.Exit(1)
}
