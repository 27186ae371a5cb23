package transferio

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bizify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader turns an uploaded file into document JSON. It accepts a bare .json
// document, a backup zip or a CSV export zip.
type Reader struct {
	maxEntrySize int64
	logger       *zap.Logger
}

// NewReader creates a reader that refuses zip entries larger than maxEntrySize
func NewReader(maxEntrySize int64, logger *zap.Logger) *Reader {
	return &Reader{maxEntrySize: maxEntrySize, logger: logger}
}

// Read implements transferapp.SourceReader
func (r *Reader) Read(filename string, data []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return bytes.TrimPrefix(data, utf8BOM), nil
	case ".zip":
		return r.readZip(data)
	default:
		return nil, shared.NewDomainError(shared.CodeParseFailure,
			fmt.Sprintf("Unsupported file format: %s", filename))
	}
}

func (r *Reader) readZip(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, parseFailure(err)
	}

	var dataFile, anyJSON *zip.File
	csvFiles := make(map[string]*zip.File)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := strings.ToLower(path.Base(f.Name))
		switch {
		case strings.HasSuffix(name, ".json"):
			if dataFile == nil && strings.Contains(name, "data") && name != BackupMetadataFile {
				dataFile = f
			}
			if anyJSON == nil {
				anyJSON = f
			}
		case name == CustomersCSV || name == InvoicesCSV || name == InvoiceItemsCSV:
			csvFiles[name] = f
		}
	}

	if dataFile == nil {
		dataFile = anyJSON
	}
	if dataFile != nil {
		r.logger.Debug("Reading document from archive", zap.String("entry", dataFile.Name))
		raw, err := r.readEntry(dataFile)
		if err != nil {
			return nil, parseFailure(err)
		}
		return bytes.TrimPrefix(raw, utf8BOM), nil
	}

	if len(csvFiles) > 0 {
		files := make(map[string][]byte, len(csvFiles))
		for name, f := range csvFiles {
			raw, err := r.readEntry(f)
			if err != nil {
				return nil, parseFailure(err)
			}
			files[name] = raw
		}
		r.logger.Debug("Reading CSV export archive", zap.Int("files", len(files)))
		return DecodeCSVArchive(files)
	}

	return nil, shared.NewDomainError(shared.CodeParseFailure, "No JSON data file found in ZIP archive")
}

func (r *Reader) readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	limit := r.maxEntrySize
	if limit <= 0 {
		limit = 20 << 20
	}
	raw, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%s exceeds %d bytes", f.Name, limit)
	}
	return raw, nil
}
