package storage

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"unicode"

	"github.com/tuannm99/novatuple/internal/record"
)

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Fprintf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

// ASCII preview: printable -> itself, else '.'
func asciiPreview(b []byte) string {
	var buf bytes.Buffer
	for _, c := range b {
		r := rune(c)
		if c < unicode.MaxASCII && unicode.IsPrint(r) {
			buf.WriteRune(r)
		} else {
			buf.WriteByte('.')
		}
	}
	return buf.String()
}

// Debug prints the header, slot occupancy and every used slot (hex, ASCII
// preview and decoded record) to w.
func (p *Page) Debug(w io.Writer) error {
	ew := &errWriter{w: w}

	n := p.NumSlots()
	ew.Fprintf("=== Page Debug ===\n")
	ew.Fprintf("pageID=%d slots=%d free=%d recordSize=%d\n",
		p.ID(), n, p.FreeSlots(), p.Schema.ByteSize())
	ew.Fprintf("schema: %s\n", p.Schema)

	for slot := 0; slot < n; slot++ {
		used, err := p.IsUsed(slot)
		if err != nil {
			return err
		}
		if !used {
			continue
		}
		raw := p.slotBytes(slot)
		ew.Fprintf("[%04d] hex=%s ascii=%q\n", slot, hex.EncodeToString(raw), asciiPreview(raw))

		r, err := record.DecodeRecord(p.Schema, raw)
		if err != nil {
			ew.Fprintf("       decode error: %v\n", err)
			continue
		}
		ew.Fprintf("       %s\n", r)
	}
	return ew.err
}
