package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/models"
)

// emitStructured prints v as JSON or TOON when one of the flags is set and
// reports whether it did.
func emitStructured(v any, asJSON, asToon bool) (bool, error) {
	if asJSON {
		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return true, nil
	}

	if asToon {
		output, err := gotoon.Encode(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode TOON: %w", err)
		}
		fmt.Println(output)
		return true, nil
	}

	return false, nil
}

func checkOutputFlags(asJSON, asToon bool) error {
	if asJSON && asToon {
		return fmt.Errorf("--json and --toon are mutually exclusive")
	}
	return nil
}

func printProductTable(products []models.Product, offset int) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Name", "SKU", "Display", "Status"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for i, p := range products {
		status := "✓"
		if p.IsMissing {
			status = "missing"
		}
		table.Append([]string{
			fmt.Sprintf("%d", offset+i+1),
			truncate(p.Name, 60),
			p.SKU,
			p.DisplaySKU,
			status,
		})
	}

	table.Render()
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-1]) + "…"
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func splitWords(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
