package services

import (
	"bytes"
	"fmt"
	"strings"
)

// ExportService renders the earnings breakdown into a downloadable PDF.
// The document is a single fixed-layout page written object by object;
// the rows are all the input there is.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// EarningsReport produces the "Earnings Overview" document from the
// breakdown rows.
func (s *ExportService) EarningsReport(breakdown EarningsBreakdown) []byte {
	var buffer bytes.Buffer

	buffer.WriteString("%PDF-1.4\n")

	// Object 1: Catalog
	buffer.WriteString("1 0 obj\n<<\n/Type /Catalog\n/Pages 2 0 R\n>>\nendobj\n\n")

	// Object 2: Pages
	buffer.WriteString("2 0 obj\n<<\n/Type /Pages\n/Kids [3 0 R]\n/Count 1\n>>\nendobj\n\n")

	contentStream := s.contentStream(breakdown)

	// Object 3: Page
	buffer.WriteString("3 0 obj\n<<\n/Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 612 792]\n")
	buffer.WriteString("/Contents 4 0 R\n/Resources <<\n/Font <<\n/F1 5 0 R\n/F2 6 0 R\n>>\n>>\n>>\nendobj\n\n")

	// Object 4: Content stream
	buffer.WriteString(fmt.Sprintf("4 0 obj\n<<\n/Length %d\n>>\nstream\n", len(contentStream)))
	buffer.WriteString(contentStream)
	buffer.WriteString("\nendstream\nendobj\n\n")

	// Objects 5 and 6: fonts
	buffer.WriteString("5 0 obj\n<<\n/Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica\n>>\nendobj\n\n")
	buffer.WriteString("6 0 obj\n<<\n/Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica-Bold\n>>\nendobj\n\n")

	buffer.WriteString("xref\n0 7\n")
	buffer.WriteString("0000000000 65535 f \n")
	buffer.WriteString("0000000010 00000 n \n")
	buffer.WriteString("0000000079 00000 n \n")
	buffer.WriteString("0000000136 00000 n \n")
	buffer.WriteString("0000000301 00000 n \n")
	buffer.WriteString("0000000380 00000 n \n")
	buffer.WriteString("0000000459 00000 n \n")

	buffer.WriteString("trailer\n<<\n/Size 7\n/Root 1 0 R\n>>\nstartxref\n538\n%%EOF\n")

	return buffer.Bytes()
}

func (s *ExportService) contentStream(breakdown EarningsBreakdown) string {
	var content strings.Builder

	content.WriteString("BT\n")
	content.WriteString("/F2 18 Tf\n")
	content.WriteString("50 742 Td\n")
	content.WriteString("(Earnings Overview) Tj\n")

	content.WriteString("/F2 12 Tf\n")
	content.WriteString("0 -40 Td\n")
	content.WriteString("(Description) Tj\n")
	content.WriteString("300 0 Td\n")
	content.WriteString("(Amount) Tj\n")
	content.WriteString("-300 0 Td\n")

	content.WriteString("/F1 12 Tf\n")
	for _, row := range breakdown.Rows() {
		content.WriteString("0 -20 Td\n")
		content.WriteString(fmt.Sprintf("(%s) Tj\n", escapePDFText(row[0])))
		content.WriteString("300 0 Td\n")
		content.WriteString(fmt.Sprintf("($%s) Tj\n", escapePDFText(row[1])))
		content.WriteString("-300 0 Td\n")
	}

	content.WriteString("/F1 9 Tf\n")
	content.WriteString("0 -40 Td\n")
	content.WriteString("(Notice: Earnings only based on orders accepted by you.) Tj\n")
	content.WriteString("ET\n")

	return content.String()
}

func escapePDFText(text string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(text)
}
