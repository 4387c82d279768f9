package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"asparse/internal/errors"
	"asparse/internal/lsp"
	"asparse/internal/parser"
)

const uri = "file:///workspace/player.as"

type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, r.published, "Should have published diagnostics")
	return r.published[len(r.published)-1]
}

func open(t *testing.T, h *lsp.Handler, ctx *glsp.Context, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "angelscript", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	h := lsp.NewHandler(parser.DefaultOptions())
	rec := &recorder{}
	open(t, h, rec.context(), "class C { @ }")

	params := rec.last(t)
	assert.Equal(t, uri, params.URI)
	require.NotEmpty(t, params.Diagnostics)

	d := params.Diagnostics[0]
	assert.Equal(t, protocol.Position{Line: 0, Character: 10}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 11}, d.Range.End)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Code)
	assert.Equal(t, errors.ErrorExpectedMethodOrProperty, d.Code.Value)
	require.NotNil(t, d.Source)
	assert.Equal(t, "asparse", *d.Source)
	assert.Equal(t, "expected method or property, instead found '@'", d.Message)
}

func TestDidChangeReparses(t *testing.T) {
	h := lsp.NewHandler(parser.DefaultOptions())
	rec := &recorder{}
	ctx := rec.context()

	open(t, h, ctx, "void f() {}")
	assert.Empty(t, rec.last(t).Diagnostics, "Valid source should have no diagnostics")

	change := func(changes ...any) {
		err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}, Version: 2},
			ContentChanges: changes,
		})
		require.NoError(t, err)
	}

	change(protocol.TextDocumentContentChangeEventWhole{Text: "void f() { int a = ; }"})
	assert.NotEmpty(t, rec.last(t).Diagnostics, "Missing initializer should be reported")

	at := protocol.Position{Line: 0, Character: 19}
	change(protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{Start: at, End: at},
		Text:  "1",
	})
	assert.Empty(t, rec.last(t).Diagnostics, "Ranged edit should complete the declaration")
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	h := lsp.NewHandler(parser.DefaultOptions())
	rec := &recorder{}
	ctx := rec.context()

	open(t, h, ctx, "class {")
	require.NotEmpty(t, rec.last(t).Diagnostics)

	err := h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, rec.last(t).Diagnostics, "Closing should clear diagnostics")
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := lsp.NewHandler(parser.DefaultOptions())
	rec := &recorder{}
	ctx := rec.context()

	open(t, h, ctx, `// player
class Player {
    int hp = 10;
    void heal(int amount) { hp += amount; }
}
`)

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 13)

	assertToken(t, &decoded[0], 1, 1, 9, "comment", nil)
	assertToken(t, &decoded[1], 2, 1, 5, "keyword", nil)
	assertToken(t, &decoded[2], 2, 7, 6, "type", []string{"declaration"})
	assertToken(t, &decoded[3], 3, 5, 3, "keyword", nil)
	assertToken(t, &decoded[4], 3, 9, 2, "property", []string{"declaration"})
	assertToken(t, &decoded[5], 3, 14, 2, "number", nil)
	assertToken(t, &decoded[6], 4, 5, 4, "keyword", nil)
	assertToken(t, &decoded[7], 4, 10, 4, "method", []string{"declaration"})
	assertToken(t, &decoded[8], 4, 15, 3, "keyword", nil)
	assertToken(t, &decoded[9], 4, 19, 6, "parameter", []string{"declaration"})
	assertToken(t, &decoded[10], 4, 29, 2, "variable", nil)
	assertToken(t, &decoded[11], 4, 32, 2, "operator", nil)
	assertToken(t, &decoded[12], 4, 35, 6, "variable", nil)
}

func TestSemanticTokensReadsUnopenedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.as")
	require.NoError(t, os.WriteFile(path, []byte("void main() {}\n"), 0o644))

	h := lsp.NewHandler(parser.DefaultOptions())
	rec := &recorder{}
	tokens, err := h.TextDocumentSemanticTokensFull(rec.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + filepath.ToSlash(path)},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assertToken(t, &decoded[1], 1, 6, 4, "function", []string{"declaration"})
	assert.Len(t, rec.published, 1, "Loading from disk should publish diagnostics")

	_, err = h.TextDocumentSemanticTokensFull(rec.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///does/not/exist.as"},
	})
	assert.Error(t, err)
}

func TestDocumentSymbols(t *testing.T) {
	h := lsp.NewHandler(parser.DefaultOptions())
	rec := &recorder{}
	ctx := rec.context()

	open(t, h, ctx, `namespace game {
  enum Color { Red, Green }
  class Player {
    int hp;
    void heal() {}
  }
}
int score = 0;
`)

	result, err := h.TextDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)

	require.Len(t, symbols, 2)
	assert.Equal(t, "game", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindNamespace, symbols[0].Kind)
	assert.Equal(t, "score", symbols[1].Name)
	assert.Equal(t, protocol.SymbolKindVariable, symbols[1].Kind)
	require.NotNil(t, symbols[1].Detail)
	assert.Equal(t, "int", *symbols[1].Detail)

	game := symbols[0].Children
	require.Len(t, game, 2)
	assert.Equal(t, "Color", game[0].Name)
	assert.Equal(t, protocol.SymbolKindEnum, game[0].Kind)
	require.Len(t, game[0].Children, 2)
	assert.Equal(t, "Red", game[0].Children[0].Name)
	assert.Equal(t, "Green", game[0].Children[1].Name)

	player := game[1]
	assert.Equal(t, "Player", player.Name)
	assert.Equal(t, protocol.Position{Line: 2, Character: 8}, player.SelectionRange.Start)
	require.Len(t, player.Children, 2)
	assert.Equal(t, "hp", player.Children[0].Name)
	assert.Equal(t, protocol.SymbolKindField, player.Children[0].Kind)
	assert.Equal(t, "heal", player.Children[1].Name)
	assert.Equal(t, protocol.SymbolKindMethod, player.Children[1].Kind)
}

func TestHover(t *testing.T) {
	h := lsp.NewHandler(parser.DefaultOptions())
	rec := &recorder{}
	ctx := rec.context()
	open(t, h, ctx, "void f() { int a = 1; }")

	hover, err := h.TextDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 0, Character: 15},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, "Function `f` › StatementBlock › Declaration `a` › Identifier `a`", content.Value)
	require.NotNil(t, hover.Range)
	assert.Equal(t, protocol.Position{Line: 0, Character: 15}, hover.Range.Start)
}

func TestCompletionOffersKeywords(t *testing.T) {
	h := lsp.NewHandler(parser.DefaultOptions())
	result, err := h.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)

	labels := make(map[string]bool)
	for _, item := range list.Items {
		labels[item.Label] = true
	}
	for _, word := range []string{"class", "while", "int", "shared", "override"} {
		assert.True(t, labels[word], "Should offer %q", word)
	}
	assert.False(t, labels["!is"], "Should only offer words")
}

func TestInitializeAdvertisesLegend(t *testing.T) {
	h := lsp.NewHandler(parser.DefaultOptions())
	result, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	opts, ok := res.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, opts.Legend.TokenTypes)
	assert.Equal(t, true, res.Capabilities.DocumentSymbolProvider)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
