package loader

import (
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFLoader validates and extracts text from PDF files on disk.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

// Validate runs a structural check over the file. Anything that is not
// a well-formed PDF fails here, before extraction is attempted.
func (l *PDFLoader) Validate(path string) error {
	conf := api.LoadConfiguration()
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("not a valid PDF: %w", err)
	}
	return nil
}

// ExtractPages returns the plain text of every page in order. Pages
// that carry no extractable text come back as empty strings.
func (l *PDFLoader) ExtractPages(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
