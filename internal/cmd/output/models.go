// Package output provides common output formatting utilities for CLI commands.
package output

import (
	"os"

	"github.com/agentstation/tenantmap/internal/cmd/table"
	"github.com/agentstation/tenantmap/pkg/accounts"
)

// FormatRecords handles the common pattern of formatting account records
// for output. This encapsulates the switch logic for different output
// formats.
func FormatRecords(records []accounts.AccountRecord, format Format) error {
	formatter := NewFormatter(format)

	// Transform to output format
	var outputData any
	switch format {
	case FormatTable, FormatWide, "":
		td := table.RecordsToTableData(records, format == FormatWide)
		outputData = Data{
			Headers:         td.Headers,
			Rows:            td.Rows,
			ColumnAlignment: td.ColumnAlignment,
		}
	default:
		outputData = records
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatAny handles the common pattern of formatting any data type for output.
// This is useful for commands with custom data structures.
func FormatAny(data any, format Format) error {
	formatter := NewFormatter(format)
	return formatter.Format(os.Stdout, data)
}
