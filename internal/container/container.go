// Package container extracts shallow structural signals from a PDF byte
// stream: header magic, encryption flag, size, and Info-dictionary metadata.
// It deliberately stops at byte-level scanning — the structural rubric needs
// only these signals, not a full object-model parse.
package container

import (
	"bytes"
	"errors"
	"regexp"
)

// Unknown marks a metadata value that is present in concept but not readable.
const Unknown = "Unknown"

// Signals are the container-level facts the structural rubric scores.
type Signals struct {
	HeaderValid  bool
	Encrypted    bool
	Size         int64
	HasMetadata  bool
	Creator      string
	CreationDate string
	ModDate      string
}

var (
	creatorRe  = regexp.MustCompile(`/Creator\s*\(([^)]*)\)`)
	creationRe = regexp.MustCompile(`/CreationDate\s*\(([^)]*)\)`)
	modDateRe  = regexp.MustCompile(`/ModDate\s*\(([^)]*)\)`)
)

var headerMagic = []byte("%PDF-")

// ErrEmptyDocument is returned for a zero-length input; nothing structural
// can be trusted from it.
var ErrEmptyDocument = errors.New("empty document")

// Inspect scans the raw document bytes for structural signals. An invalid
// header is a signal (a failing check), not an error; only a document with no
// bytes at all is unreadable.
func Inspect(data []byte) (Signals, error) {
	if len(data) == 0 {
		return Signals{}, ErrEmptyDocument
	}

	sig := Signals{
		Size:        int64(len(data)),
		HeaderValid: bytes.HasPrefix(data, headerMagic),
		Encrypted:   bytes.Contains(data, []byte("/Encrypt")),
	}

	creator := findValue(creatorRe, data)
	creation := findValue(creationRe, data)
	mod := findValue(modDateRe, data)

	sig.HasMetadata = creator != "" || creation != "" || mod != ""
	if sig.HasMetadata {
		sig.Creator = orUnknown(creator)
		sig.CreationDate = orUnknown(creation)
		sig.ModDate = orUnknown(mod)
	}
	return sig, nil
}

func findValue(re *regexp.Regexp, data []byte) string {
	if m := re.FindSubmatch(data); m != nil {
		return string(m[1])
	}
	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
