package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(Width58mm)
	data := doc.Bytes()
	assert.Equal(t, []byte{ESC, '@'}, data[:2])
}

func TestKeyValueAlignment(t *testing.T) {
	doc := NewDocument(Width58mm)
	doc.KeyValue("Total:", "206.00")

	lines := strings.Split(string(doc.Bytes()[2:]), "\n")
	assert.Len(t, lines[0], Width58mm)
	assert.True(t, strings.HasPrefix(lines[0], "Total:"))
	assert.True(t, strings.HasSuffix(lines[0], "206.00"))
}

func TestKeyValueNeverCollides(t *testing.T) {
	doc := NewDocument(10)
	doc.KeyValue("A very long key", "99.99")

	lines := strings.Split(string(doc.Bytes()[2:]), "\n")
	assert.Equal(t, "A very long key 99.99", lines[0])
}

func TestItemLineTruncatesLongNames(t *testing.T) {
	doc := NewDocument(Width58mm)
	doc.ItemLine(2, strings.Repeat("X", 60), "116.00")

	lines := strings.Split(string(doc.Bytes()[2:]), "\n")
	assert.Len(t, lines[0], Width58mm)
	assert.True(t, strings.HasSuffix(lines[0], "116.00"))
	assert.True(t, strings.HasPrefix(lines[0], "2x X"))
}

func TestSeparatorSpansWidth(t *testing.T) {
	doc := NewDocument(Width80mm)
	doc.Separator('-')

	lines := strings.Split(string(doc.Bytes()[2:]), "\n")
	assert.Equal(t, strings.Repeat("-", Width80mm), lines[0])
}

func TestZeroWidthFallsBackTo58mm(t *testing.T) {
	doc := NewDocument(0)
	assert.Equal(t, Width58mm, doc.Width())
}

func TestResetClearsBuffer(t *testing.T) {
	doc := NewDocument(Width58mm)
	doc.Text("hello").PartialCut()
	doc.Reset()
	assert.Equal(t, []byte{ESC, '@'}, doc.Bytes())
}
