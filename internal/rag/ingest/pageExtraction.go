package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// GetDocType classifies an upload by extension. Anything unsupported is ERR
// and rejected before extraction is attempted.
func GetDocType(docPath string) docModel.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return docModel.PDF
	case ".docx", ".txt", ".rtf":
		return docModel.DOCX
	default:
		return docModel.ERR
	}
}

// ExtractPages pulls per-page text out of the file. A structurally broken
// file is a hard error; individual unreadable pages are skipped so one bad
// page does not sink the document.
func ExtractPages(path string, contentType docModel.DocType) ([]docModel.Page, error) {
	switch contentType {
	case docModel.PDF:
		return extractPDF(path)
	case docModel.DOCX:
		return extractDocxTxtRtf(path)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

func extractPDF(path string) ([]docModel.Page, error) {
	logger.Debug("extractPDF", "attempting extraction", path)
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file")
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []docModel.Page
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			// keep the page slot; an image-only page counts as empty text
			pages = append(pages, docModel.Page{Number: i})
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			logger.Error("Error parsing page content", "page", i, "error", err)
			pages = append(pages, docModel.Page{Number: i})
			continue
		}

		pages = append(pages, docModel.Page{
			Number: i,
			Text:   content,
		})
	}
	return pages, nil
}

// extractDocxTxtRtf reads a .docx, .txt or .rtf file. cat gives no page
// boundaries, so the whole document lands on one page.
func extractDocxTxtRtf(path string) ([]docModel.Page, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc")
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}

	return []docModel.Page{
		{
			Number: 1,
			Text:   text,
		},
	}, nil
}

// protectExtract guards GetPlainText with a deadline; the pdf library can
// hang on malformed content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTime):
		logger.Error("pageExtract", "timeout", config.PageExtractTime)
		return "", errors.New("timeout")
	}
}
