package transferio

import (
	"encoding/json"
	"testing"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/domain/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestReader() *Reader {
	return NewReader(1<<20, zap.NewNop())
}

func TestReader_JSON(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"export_version":"1.0"}`)...)

	out, err := newTestReader().Read("export.JSON", raw)

	require.NoError(t, err)
	assert.JSONEq(t, `{"export_version":"1.0"}`, string(out))
}

func TestReader_UnsupportedExtension(t *testing.T) {
	_, err := newTestReader().Read("export.xml", []byte("<x/>"))
	assert.ErrorIs(t, err, shared.ErrParseFailure)
	assert.ErrorContains(t, err, "Unsupported file format")
}

func TestReader_BackupArchive(t *testing.T) {
	data, err := NewBackupEncoder().Encode(sampleDocument(), transferapp.ExportMeta{GeneratedAt: exportedAt})
	require.NoError(t, err)

	out, err := newTestReader().Read("bizify_backup.zip", data)

	require.NoError(t, err)
	var doc transfer.Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "Acme GmbH", doc.Settings.CompanyName)
	assert.Len(t, doc.Customers, 1)
}

func TestReader_PrefersDataFileOverMetadata(t *testing.T) {
	data, err := writeZip([]zipEntry{
		{"metadata.json", []byte(`{"version":"1.0"}`)},
		{"export/my_data.json", []byte(`{"export_version":"1.0","customers":[]}`)},
	})
	require.NoError(t, err)

	out, err := newTestReader().Read("upload.zip", data)

	require.NoError(t, err)
	assert.JSONEq(t, `{"export_version":"1.0","customers":[]}`, string(out))
}

func TestReader_FallsBackToAnyJSON(t *testing.T) {
	data, err := writeZip([]zipEntry{
		{"notes.txt", []byte("hello")},
		{"export.json", []byte(`{"export_version":"1.0"}`)},
	})
	require.NoError(t, err)

	out, err := newTestReader().Read("upload.zip", data)

	require.NoError(t, err)
	assert.JSONEq(t, `{"export_version":"1.0"}`, string(out))
}

func TestReader_CSVArchive(t *testing.T) {
	data, err := NewCSVEncoder().Encode(sampleDocument(), transferapp.ExportMeta{})
	require.NoError(t, err)

	out, err := newTestReader().Read("bizify_export.zip", data)

	require.NoError(t, err)
	var doc transfer.Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "1.0", doc.ExportVersion)
	require.Len(t, doc.Customers, 1)
	assert.Equal(t, "Navy, Inc.", doc.Customers[0].Company)
	require.Len(t, doc.Invoices, 1)
	inv := doc.Invoices[0]
	assert.Equal(t, "2024-01-15", inv.IssueDate)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "2024-02-14", *inv.DueDate)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "2.5", inv.Items[0].Quantity.Decimal().String())
	assert.Equal(t, "5", inv.Items[1].UnitPrice.Decimal().String())
}

func TestReader_CSVArchive_BadNumber(t *testing.T) {
	data, err := writeZip([]zipEntry{
		{InvoicesCSV, []byte("Invoice Number,Customer Email,Total\nINV-1,a@example.com,lots\n")},
	})
	require.NoError(t, err)

	_, err = newTestReader().Read("upload.zip", data)

	assert.ErrorIs(t, err, shared.ErrParseFailure)
	assert.ErrorContains(t, err, "invoices.csv line 2")
}

func TestReader_CSVArchive_MissingColumn(t *testing.T) {
	data, err := writeZip([]zipEntry{
		{CustomersCSV, []byte("Name,Phone\nGrace,555\n")},
	})
	require.NoError(t, err)

	_, err = newTestReader().Read("upload.zip", data)

	assert.ErrorIs(t, err, shared.ErrParseFailure)
	assert.ErrorContains(t, err, `missing column "Email"`)
}

func TestReader_ArchiveWithoutDocument(t *testing.T) {
	data, err := writeZip([]zipEntry{{"README.md", []byte("# hi")}})
	require.NoError(t, err)

	_, err = newTestReader().Read("upload.zip", data)

	assert.ErrorIs(t, err, shared.ErrParseFailure)
	assert.ErrorContains(t, err, "No JSON data file found in ZIP archive")
}

func TestReader_EntryTooLarge(t *testing.T) {
	data, err := writeZip([]zipEntry{{"data.json", []byte(`{"export_version":"1.0"}`)}})
	require.NoError(t, err)

	_, err = NewReader(8, zap.NewNop()).Read("upload.zip", data)

	assert.ErrorIs(t, err, shared.ErrParseFailure)
}

func TestReader_NotAZip(t *testing.T) {
	_, err := newTestReader().Read("upload.zip", []byte("plain text"))
	assert.ErrorIs(t, err, shared.ErrParseFailure)
}
