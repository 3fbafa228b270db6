package processors

import "bytes"

// TrimWhitespace strips trailing blanks from every line and ends the file
// with exactly one newline.
type TrimWhitespace struct{}

func NewTrimWhitespace() TrimWhitespace {
	return TrimWhitespace{}
}

func (TrimWhitespace) ProcessContent(_ string, content []byte) ([]byte, error) {
	if len(content) == 0 {
		return content, nil
	}

	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	lines := bytes.Split(content, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " \t")
	}

	out := bytes.TrimRight(bytes.Join(lines, []byte("\n")), "\n")
	return append(out, '\n'), nil
}
