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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-keyset/pkg/keyset"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	if format == "" {
		format = string(OutputFormatText)
	}
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintKeysetInfo prints material-free keyset metadata.
func (p *Printer) PrintKeysetInfo(name string, info *keyset.KeysetInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"name":   name,
			"keyset": info,
		})
	case OutputFormatYAML:
		return p.printYAML(map[string]interface{}{
			"name":   name,
			"keyset": info,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Keyset: %s\n", name)
		fmt.Fprintf(p.writer, "Primary key ID: %d\n", info.PrimaryKeyID)
		fmt.Fprintf(p.writer, "%-12s %-10s %-14s %-20s %s\n",
			"KEY ID", "STATUS", "PREFIX", "MATERIAL", "TYPE URL")
		fmt.Fprintln(p.writer, strings.Repeat("-", 90))
		for _, ki := range info.KeyInfo {
			fmt.Fprintf(p.writer, "%-12d %-10s %-14s %-20s %s\n",
				ki.KeyID, ki.Status, ki.OutputPrefixType, ki.KeyMaterialType, ki.TypeURL)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintKeysetList prints stored keyset names.
func (p *Printer) PrintKeysetList(names []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{"keysets": names})
	case OutputFormatYAML:
		return p.printYAML(map[string]interface{}{"keysets": names})
	case OutputFormatText:
		if len(names) == 0 {
			fmt.Fprintln(p.writer, "No keysets found")
			return nil
		}
		for _, n := range names {
			fmt.Fprintf(p.writer, "%s\n", n)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintResult prints a simple operation result message.
func (p *Printer) PrintResult(msg string, fields map[string]interface{}) error {
	switch p.format {
	case OutputFormatJSON:
		out := map[string]interface{}{"result": msg}
		for k, v := range fields {
			out[k] = v
		}
		return p.printJSON(out)
	case OutputFormatYAML:
		out := map[string]interface{}{"result": msg}
		for k, v := range fields {
			out[k] = v
		}
		return p.printYAML(out)
	case OutputFormatText:
		fmt.Fprintln(p.writer, msg)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error in the configured format.
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{"error": err.Error()})
	case OutputFormatYAML:
		return p.printYAML(map[string]interface{}{"error": err.Error()})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

func (p *Printer) printJSON(v interface{}) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) printYAML(v interface{}) error {
	enc := yaml.NewEncoder(p.writer)
	defer enc.Close()
	return enc.Encode(v)
}
