package processors

import (
	"bytes"
	"path/filepath"
	"strings"
)

// AddGeneratedHeader prefixes files with a banner line followed by a blank
// line. Content that already starts with the banner is left alone, so the
// processor can run over its own output.
type AddGeneratedHeader struct {
	banner string
	exts   map[string]bool
}

// NewAddGeneratedHeader stamps banner on files with one of exts. Without
// extensions every file is stamped.
func NewAddGeneratedHeader(banner string, exts ...string) *AddGeneratedHeader {
	h := &AddGeneratedHeader{banner: strings.TrimRight(banner, "\n")}
	if len(exts) > 0 {
		h.exts = make(map[string]bool, len(exts))
		for _, ext := range exts {
			h.exts[strings.ToLower(ext)] = true
		}
	}
	return h
}

func (h *AddGeneratedHeader) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if h.exts != nil && !h.exts[strings.ToLower(filepath.Ext(filePath))] {
		return content, nil
	}
	if bytes.HasPrefix(content, []byte(h.banner+"\n")) {
		return content, nil
	}

	out := make([]byte, 0, len(h.banner)+2+len(content))
	out = append(out, h.banner...)
	out = append(out, "\n\n"...)
	out = append(out, bytes.TrimLeft(content, "\n")...)
	return out, nil
}
