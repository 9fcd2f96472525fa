package contacts

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

const separator = ":"

// Encode serializes contacts in the data file format, one name:phone per line.
func Encode(list []Contact) []byte {
	var b bytes.Buffer
	for _, c := range list {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// Decode parses the data file format. Parsing stops at the first empty line.
func Decode(r io.Reader) ([]Contact, error) {
	list, _, _, err := decode(r)
	return list, err
}

// decode also reports whether a line appended to the input would be lost:
// after an empty terminating line it is never read back, and after a last
// line without '\n' it would be glued onto that line. dropped counts the
// non-blank lines after the terminator, which a rewrite discards.
func decode(r io.Reader) (list []Contact, dirty bool, dropped int, err error) {
	list = []Contact{}
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, false, 0, err
		}
		if raw == "" && err == io.EOF {
			return list, false, 0, nil
		}

		terminated := strings.HasSuffix(raw, "\n")
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if line == "" {
			dropped, err := countNonBlank(br)
			if err != nil {
				return nil, false, 0, err
			}
			return list, true, dropped, nil
		}

		c, perr := parseLine(n, line)
		if perr != nil {
			return nil, false, 0, perr
		}
		list = append(list, c)

		if !terminated {
			return list, true, 0, nil
		}
	}
}

func countNonBlank(r io.Reader) (int, error) {
	n := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}

func parseLine(n int, line string) (Contact, error) {
	name, phone, ok := strings.Cut(line, separator)
	if !ok {
		return Contact{}, &ParseError{Line: n, Text: line}
	}
	return Contact{Name: name, Phone: phone}, nil
}
