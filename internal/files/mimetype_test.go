package files

import "testing"

func TestResolveMimetype(t *testing.T) {
	pdfHead := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n")
	pngHead := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	cases := []struct {
		name     string
		declared string
		fileName string
		head     []byte
		want     string
	}{
		{name: "declared wins", declared: "application/pdf", fileName: "report.pdf", head: pngHead, want: "application/pdf"},
		{name: "declared kept verbatim", declared: "image/png; charset=binary", fileName: "a.png", want: "image/png; charset=binary"},
		{name: "octet-stream sniffed", declared: "application/octet-stream", fileName: "report.pdf", head: pdfHead, want: "application/pdf"},
		{name: "empty sniffed", declared: "", fileName: "image.jpg", head: pngHead, want: "image/png"},
		{name: "text falls back to extension", declared: "", fileName: "sheet.xlsx", head: []byte("hello"), want: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{name: "no head uses extension", declared: "", fileName: "letter.doc", want: "application/msword"},
		{name: "unparseable declared ignored", declared: ";;;", fileName: "photo.jpeg", want: "image/jpeg"},
		{name: "unknown everything", declared: "", fileName: "blob", want: genericMimetype},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveMimetype(tc.declared, tc.fileName, tc.head); got != tc.want {
				t.Fatalf("resolveMimetype = %q, want %q", got, tc.want)
			}
		})
	}
}
