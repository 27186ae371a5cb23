package transferio

import (
	"encoding/json"

	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/domain/transfer"
)

// JSONEncoder writes the document as indented JSON
type JSONEncoder struct{}

// NewJSONEncoder creates a JSON encoder
func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

// Encode implements transferapp.Encoder
func (JSONEncoder) Encode(doc *transfer.Document, _ transferapp.ExportMeta) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
