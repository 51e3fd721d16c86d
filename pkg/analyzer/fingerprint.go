package analyzer

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ContextID returns a stable identity hash for a finding so results can
// be tracked across runs even when surrounding lines shift. The hash
// covers the file path, line number, and trimmed line content.
func ContextID(path string, line uint32, content string) string {
	h := xxhash.New()
	h.WriteString(path)

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], line)
	h.Write(buf[:])

	h.WriteString(strings.TrimSpace(content))
	return fmt.Sprintf("%016x", h.Sum64())
}
