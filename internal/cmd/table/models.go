// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"sort"
	"strings"

	"github.com/agentstation/tenantmap/pkg/accounts"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// RecordsToTableData converts account records to table format.
func RecordsToTableData(records []accounts.AccountRecord, wide bool) Data {
	headers := []string{"Subscription ID", "Name", "Tenant", "Location"}
	if wide {
		headers = append(headers, "Secret Schema", "Tags")
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := []string{
			record.Data.SubscriptionID,
			record.Name,
			record.Data.TenantID,
			FormatLocation(record.Location),
		}

		if wide {
			schema := record.SecretSchemaID
			if schema == "" {
				schema = "-"
			}

			tags := FormatTags(record.Tags)
			if tags == "" {
				tags = "-"
			}

			row = append(row, schema, tags)
		}

		rows = append(rows, row)
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

// FormatLocation renders a location chain as a path, root first.
func FormatLocation(chain accounts.LocationChain) string {
	if len(chain) == 0 {
		return "-"
	}
	names := make([]string, 0, len(chain))
	for _, node := range chain {
		names = append(names, node.Name)
	}
	return strings.Join(names, " / ")
}

// FormatTags renders tags as key=value pairs in stable order.
func FormatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(tags))
	for key, value := range tags {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}
