package printing

// PDFFile is a rendered invoice ready to download
type PDFFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
