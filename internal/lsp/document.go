package lsp

import (
	"sort"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"asparse/internal/parser"
)

// document is one open text buffer and its latest parse.
type document struct {
	uri        protocol.DocumentUri
	version    protocol.Integer
	result     *parser.ParseResult
	lineStarts []int
}

func newDocument(uri protocol.DocumentUri, version protocol.Integer, result *parser.ParseResult) *document {
	return &document{
		uri:        uri,
		version:    version,
		result:     result,
		lineStarts: lineStarts(result.Source),
	}
}

func lineStarts(source string) []int {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// position maps a byte offset to an LSP position. Characters are counted in
// UTF-16 code units.
func (d *document) position(offset int) protocol.Position {
	return positionIn(d.result.Source, d.lineStarts, offset)
}

func (d *document) rangeOf(pos, end int) protocol.Range {
	return protocol.Range{Start: d.position(pos), End: d.position(end)}
}

// offset maps an LSP position back to a byte offset, clamping to the line.
func (d *document) offset(p protocol.Position) int {
	return offsetIn(d.result.Source, d.lineStarts, p)
}

func positionIn(source string, starts []int, offset int) protocol.Position {
	offset = min(max(offset, 0), len(source))
	line := sort.Search(len(starts), func(i int) bool {
		return starts[i] > offset
	}) - 1
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(utf16Len(source[starts[line]:offset])),
	}
}

func offsetIn(source string, starts []int, p protocol.Position) int {
	if int(p.Line) >= len(starts) {
		return len(source)
	}
	offset := starts[p.Line]
	for units := protocol.UInteger(0); units < p.Character && offset < len(source); {
		r, size := utf8.DecodeRuneInString(source[offset:])
		if r == '\n' {
			break
		}
		offset += size
		units += protocol.UInteger(utf16Width(r))
	}
	return offset
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Width(r)
	}
	return n
}

func utf16Width(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
