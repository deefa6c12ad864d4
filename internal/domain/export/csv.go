package export

import (
	"strings"
)

const lineEnd = "\r\n"

// EncodeCSV writes an unquoted header line, then every value double-quoted
// with embedded quotes escaped as \". Each line ends in CRLF.
func EncodeCSV(rows []Row) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(Columns, ","))
	b.WriteString(lineEnd)
	for _, row := range rows {
		for i, value := range row.Values() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(value, `"`, `\"`))
			b.WriteByte('"')
		}
		b.WriteString(lineEnd)
	}
	return []byte(b.String())
}
