package transferio

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/domain/transfer"
)

// Backup archive entries
const (
	BackupDataFile     = "bizify_data.json"
	BackupMetadataFile = "metadata.json"
	BackupReadmeFile   = "README.md"
)

// BackupMetadata describes a backup archive
type BackupMetadata struct {
	BackupDate     time.Time `json:"backup_date"`
	Version        string    `json:"version"`
	Application    string    `json:"application"`
	BackupType     string    `json:"backup_type"`
	UserID         string    `json:"user_id"`
	TotalCustomers int       `json:"total_customers"`
	TotalInvoices  int       `json:"total_invoices"`
}

const backupReadme = `# Bizify Backup

This is a complete backup of your Bizify data.

## Contents:
- bizify_data.json: Complete data export
- metadata.json: Backup information
- README.md: This file

## Restore Instructions:
1. Access Bizify settings
2. Go to Import/Export section
3. Select this backup file
4. Choose import options
5. Click Import

Generated on: `

// BackupEncoder writes a complete backup zip
type BackupEncoder struct {
	json JSONEncoder
}

// NewBackupEncoder creates a backup encoder
func NewBackupEncoder() *BackupEncoder {
	return &BackupEncoder{}
}

// Encode implements transferapp.Encoder
func (e BackupEncoder) Encode(doc *transfer.Document, meta transferapp.ExportMeta) ([]byte, error) {
	data, err := e.json.Encode(doc, meta)
	if err != nil {
		return nil, err
	}
	metadata, err := json.MarshalIndent(BackupMetadata{
		BackupDate:     meta.GeneratedAt.UTC(),
		Version:        transfer.CurrentVersion,
		Application:    transfer.ApplicationName,
		BackupType:     "complete",
		UserID:         meta.OwnerID.String(),
		TotalCustomers: len(doc.Customers),
		TotalInvoices:  len(doc.Invoices),
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	readme := backupReadme + meta.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")

	return writeZip([]zipEntry{
		{BackupDataFile, data},
		{BackupMetadataFile, metadata},
		{BackupReadmeFile, []byte(readme)},
	})
}

type zipEntry struct {
	name string
	data []byte
}

func writeZip(entries []zipEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
