package services

import (
  "bytes"
  "fmt"
  "io"
  "strings"

  pdf "github.com/ledongthuc/pdf"

  "github.com/singhHariom1/Studysync-AI/internal/logger"
)

// PDFFilenameSentinel prefixes the text returned when both parse methods
// fail; downstream prompting switches to a filename-only strategy when it
// sees this.
const PDFFilenameSentinel = "PDF_FILENAME:"

const (
  ExtractMethodContent  = "content-based"
  ExtractMethodFilename = "filename-based"
)

// ExtractTextFromPDF runs an ordered fallback chain over the uploaded bytes
// and always returns usable text: page-by-page extraction first, then a
// whole-document parse, then the filename sentinel. It never returns an
// error; every stage failure is logged and the chain moves on.
func ExtractTextFromPDF(log *logger.Logger, data []byte, filename string) (string, string) {
  text, err := extractByPages(data)
  if err == nil && strings.TrimSpace(text) != "" {
    log.Debug("Page-by-page PDF extraction successful", "filename", filename, "length", len(text))
    return text, ExtractMethodContent
  }
  log.Warn("Page-by-page PDF extraction failed, trying whole-document parse", "filename", filename, "error", err)

  text, err = extractWholeDocument(data)
  if err == nil && strings.TrimSpace(text) != "" {
    log.Debug("Whole-document PDF extraction successful", "filename", filename, "length", len(text))
    return text, ExtractMethodContent
  }
  log.Warn("Whole-document PDF extraction failed, falling back to filename", "filename", filename, "error", err)

  return PDFFilenameSentinel + " " + filename, ExtractMethodFilename
}

// IsFilenameSentinel reports whether extracted text is the "content
// unavailable" marker rather than real document text.
func IsFilenameSentinel(text string) bool {
  return strings.HasPrefix(text, PDFFilenameSentinel)
}

// FilenameFromSentinel recovers the original filename from sentinel text.
func FilenameFromSentinel(text string) string {
  return strings.TrimSpace(strings.TrimPrefix(text, PDFFilenameSentinel))
}

func extractByPages(data []byte) (text string, err error) {
  // The parser panics on some malformed files; the chain must survive that.
  defer func() {
    if r := recover(); r != nil {
      err = fmt.Errorf("pdf page extraction panic: %v", r)
    }
  }()

  reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
  if err != nil {
    return "", fmt.Errorf("pdf reader: %w", err)
  }

  var out strings.Builder
  numPages := reader.NumPage()
  for i := 1; i <= numPages; i++ {
    page := reader.Page(i)
    if page.V.IsNull() {
      continue
    }
    pageText, ptErr := page.GetPlainText(nil)
    if ptErr != nil {
      // Image-only or damaged page; keep going.
      continue
    }
    out.WriteString(strings.TrimSpace(pageText))
    out.WriteString("\n")
  }
  return strings.TrimSpace(out.String()), nil
}

func extractWholeDocument(data []byte) (text string, err error) {
  defer func() {
    if r := recover(); r != nil {
      err = fmt.Errorf("pdf plaintext panic: %v", r)
    }
  }()

  reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
  if err != nil {
    return "", fmt.Errorf("pdf reader: %w", err)
  }
  plain, err := reader.GetPlainText()
  if err != nil {
    return "", fmt.Errorf("pdf plaintext: %w", err)
  }
  b, err := io.ReadAll(plain)
  if err != nil {
    return "", fmt.Errorf("pdf read: %w", err)
  }
  return strings.TrimSpace(string(b)), nil
}
