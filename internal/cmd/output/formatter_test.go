package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tenantmap/internal/cmd/table"
	"github.com/agentstation/tenantmap/pkg/accounts"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "json", want: FormatJSON},
		{input: "YAML", want: FormatYAML},
		{input: "table", want: FormatTable},
		{input: "wide", want: FormatWide},
		{input: "", want: Format("")},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &JSONFormatter{Indent: "  "}
	require.NoError(t, f.Format(&buf, map[string]string{"name": "Platform"}))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Platform", decoded["name"])
}

func TestYAMLFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &YAMLFormatter{}
	require.NoError(t, f.Format(&buf, map[string]string{"name": "Platform"}))
	assert.Contains(t, buf.String(), "name: Platform")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &TableFormatter{}
	require.NoError(t, f.Format(&buf, map[string]string{"name": "Platform"}))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Platform", decoded["name"])
}

func TestTableFormatterRendersData(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &TableFormatter{}
	require.NoError(t, f.Format(&buf, Data{
		Headers: []string{"Subscription ID", "Name"},
		Rows:    [][]string{{"sub-1", "Platform"}},
	}))

	out := buf.String()
	assert.Contains(t, out, "sub-1")
	assert.Contains(t, out, "Platform")
}

func TestTableFormatterRendersAccountRecords(t *testing.T) {
	t.Parallel()

	records := []accounts.AccountRecord{{
		Name:           "Prod",
		SecretSchemaID: accounts.SecretSchemaMultiTenant,
		Data:           accounts.AccountData{SubscriptionID: "aaaa-1111", TenantID: "tenant-a"},
		Location: accounts.LocationChain{
			{Name: "Engineering", ResourceID: "dept-100"},
		},
		Tags: map[string]string{"env": "prod"},
	}}

	td := table.RecordsToTableData(records, true)
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, Data{
		Headers:         td.Headers,
		Rows:            td.Rows,
		ColumnAlignment: td.ColumnAlignment,
	}))

	out := buf.String()
	assert.Contains(t, out, "aaaa-1111")
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, accounts.SecretSchemaMultiTenant)
	assert.Contains(t, out, "env=prod")
}

func TestTableFormatterReflectsStructSlice(t *testing.T) {
	t.Parallel()

	type summary struct {
		BillingAccountID string `json:"billing_account_id"`
		AgreementType    string `json:"agreement_type"`
		Subscriptions    int    `json:"subscriptions"`
	}

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, []summary{
		{BillingAccountID: "ba-1", AgreementType: "EnterpriseAgreement", Subscriptions: 12},
	}))

	out := buf.String()
	assert.Contains(t, out, "Billing Account Id", "headers derive from json tags")
	assert.Contains(t, out, "EnterpriseAgreement")
	assert.Contains(t, out, "12")
}
