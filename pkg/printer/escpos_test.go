package printer

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// lines strips the init sequence and splits the printable text
func lines(d *Document) []string {
	out := bytes.TrimPrefix(d.Bytes(), []byte{ESC, '@'})
	return strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
}

func TestNewDocumentDefaults(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes())

	d.Separator('-')
	assert.Equal(t, []string{strings.Repeat("-", DefaultCharWidth)}, lines(d))
}

func TestKeyValueAlignsRight(t *testing.T) {
	d := NewDocument(20).KeyValue("TOTAL", "5.97")
	got := lines(d)
	assert.Equal(t, []string{"TOTAL           5.97"}, got)
}

func TestKeyValueCountsRunes(t *testing.T) {
	d := NewDocument(20).KeyValue("Plátano", "0.75")
	assert.Equal(t, 20, utf8.RuneCountInString(lines(d)[0]))
}

func TestItemLine(t *testing.T) {
	d := NewDocument(24).ItemLine(2, "kg", "Manzana", "3.00")
	assert.Equal(t, []string{"2 kg Manzana        3.00"}, lines(d))
}

func TestItemLineWrapsLongNames(t *testing.T) {
	d := NewDocument(20).ItemLine(1, "caja", "Mandarina importada extra", "9.99")
	got := lines(d)
	assert.Greater(t, len(got), 1)
	assert.True(t, strings.HasSuffix(got[0], "9.99"))
	for _, l := range got {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), 20)
	}
	assert.True(t, strings.HasPrefix(got[1], "       "))
}

func TestSeparator(t *testing.T) {
	d := NewDocument(8).Separator('=')
	assert.Equal(t, []string{"========"}, lines(d))
}
