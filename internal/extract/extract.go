// Package extract normalizes user input into text or a decoded image.
//
// Dispatch happens purely on the declared media type; the bytes are
// never sniffed.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/gen2brain/go-fitz"
)

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var ErrUnsupportedType = errors.New("unsupported media type")

// Kind is the closed set of document media types the extractor accepts.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPDF
	KindDOCX
	KindPlainText
)

func KindOf(contentType string) Kind {
	switch contentType {
	case "application/pdf":
		return KindPDF
	case docxMediaType:
		return KindDOCX
	case "text/plain":
		return KindPlainText
	default:
		return KindUnsupported
	}
}

// FromFile extracts plain text from an uploaded document according to
// its declared media type. Undeclared or unknown types fail with
// ErrUnsupportedType.
func FromFile(data []byte, contentType string) (string, error) {
	switch KindOf(contentType) {
	case KindPDF:
		return pdfText(data)
	case KindDOCX:
		return docxText(data)
	case KindPlainText:
		return string(data), nil
	default:
		return "", ErrUnsupportedType
	}
}

// pdfText concatenates the text of every page in page order.
func pdfText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		page, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(page)
	}
	return sb.String(), nil
}

// docxText concatenates every paragraph in document order, one per line.
func docxText(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			sb.WriteString(para.String())
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
