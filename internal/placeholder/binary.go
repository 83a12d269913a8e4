package placeholder

import (
	"io"
	"os"
)

// sniffLen is how much of a file IsBinaryFile inspects.
const sniffLen = 8000

// IsBinary reports whether data contains control characters that do not
// occur in text: 0x00-0x07 and 0x0E-0x19. Tab, newline, vertical tab, form
// feed, carriage return, SUB and ESC are treated as text.
func IsBinary(data []byte) bool {
	for _, c := range data {
		if c <= 0x07 || (c >= 0x0E && c <= 0x19) {
			return true
		}
	}
	return false
}

// IsBinaryFile applies IsBinary to the first bytes of the file at path.
func IsBinaryFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	return IsBinary(buf[:n]), nil
}
