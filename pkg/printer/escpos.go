package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width + double height
	FontWide   = 0x10
	FontTall   = 0x01
)

// DefaultCharWidth fits 58mm paper
const DefaultCharWidth = 32

// Document builds an ESC/POS byte stream for thermal printers.
// Widths are counted in runes so accented names line up.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates an initialized document charWidth columns wide
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultCharWidth
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends ESC @
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s followed by a line feed
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) TextF(format string, args ...any) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints char across the full width
func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// KeyValue prints key on the left and value flush right.
// A key too long for the line is truncated.
func (d *Document) KeyValue(key, value string) *Document {
	room := d.width - utf8.RuneCountInString(value) - 1
	if room < 1 {
		room = 1
	}
	key = truncate(key, room)
	return d.Text(key + pad(d.width, key, value) + value)
}

// ItemLine prints "qty unit name" with the line total flush right, e.g.
// "2 kg Manzana               3.00". Long names wrap onto the next lines.
func (d *Document) ItemLine(qty int, unit, name, total string) *Document {
	prefix := fmt.Sprintf("%d %s ", qty, unit)
	room := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total) - 1
	if room < 1 {
		room = 1
	}
	first, rest := splitAt(name, room)
	left := prefix + first
	d.Text(left + pad(d.width, left, total) + total)

	indent := strings.Repeat(" ", utf8.RuneCountInString(prefix))
	wrap := d.width - len(indent)
	if wrap < 1 {
		wrap = 1
	}
	for rest != "" {
		var chunk string
		chunk, rest = splitAt(rest, wrap)
		d.Text(indent + chunk)
	}
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func pad(width int, left, right string) string {
	n := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", n)
}

func truncate(s string, n int) string {
	head, _ := splitAt(s, n)
	return head
}

// splitAt cuts s after n runes
func splitAt(s string, n int) (string, string) {
	if utf8.RuneCountInString(s) <= n {
		return s, ""
	}
	r := []rune(s)
	return string(r[:n]), strings.TrimLeft(string(r[n:]), " ")
}
