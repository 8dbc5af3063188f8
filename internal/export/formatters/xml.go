package formatters

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/ellipszist/texport/internal/export"
)

// XMLFormatter formats reports as XML.
type XMLFormatter struct{}

// NewXMLFormatter creates a new XML formatter.
func NewXMLFormatter() *XMLFormatter {
	return &XMLFormatter{}
}

// Name returns the formatter name.
func (f *XMLFormatter) Name() string {
	return "xml"
}

// ContentType returns the MIME content type.
func (f *XMLFormatter) ContentType() string {
	return "application/xml"
}

// FileExtension returns the typical file extension.
func (f *XMLFormatter) FileExtension() string {
	return ".xml"
}

// xmlReport is the XML representation of a report.
type xmlReport struct {
	XMLName xml.Name `xml:"export-report"`
	reportDoc
}

// Format converts the report to XML.
func (f *XMLFormatter) Format(report *export.Report) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	if err := enc.Encode(xmlReport{reportDoc: newReportDoc(report)}); err != nil {
		return nil, fmt.Errorf("failed to encode XML; %w", err)
	}
	buf.WriteString("\n")

	return buf.Bytes(), nil
}
