package lsp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"asparse/internal/ast"
	"asparse/internal/parser"
	"asparse/token"
)

// Handler implements the LSP server handlers for AngelScript documents.
type Handler struct {
	mu   sync.RWMutex
	opts parser.Options
	docs map[protocol.DocumentUri]*document
}

// NewHandler creates a handler that parses documents with opts.
func NewHandler(opts parser.Options) *Handler {
	return &Handler{
		opts: opts,
		docs: make(map[protocol.DocumentUri]*document),
	}
}

// Initialize responds to the client's initialize request and advertises the
// server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log := commonlog.GetLogger("asparse.lsp")
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			HoverProvider:          true,
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: diagnosticSource,
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	commonlog.GetLogger("asparse.lsp").Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	commonlog.GetLogger("asparse.lsp").Info("shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen parses the opened buffer and publishes its diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log := commonlog.GetLogger("asparse.lsp")
	log.Debugf("opened %s", params.TextDocument.URI)

	doc := h.update(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	sendDiagnosticNotification(ctx, doc)
	return nil
}

// TextDocumentDidChange reparses the buffer after an edit. Full and ranged
// content changes are both accepted and applied in order.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log := commonlog.GetLogger("asparse.lsp")
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()

	text := ""
	if ok {
		text = doc.result.Source
	}

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			starts := lineStarts(text)
			start := offsetIn(text, starts, c.Range.Start)
			end := max(offsetIn(text, starts, c.Range.End), start)
			text = text[:start] + c.Text + text[end:]
		default:
			log.Warningf("ignoring content change of type %T", change)
		}
	}

	doc = h.update(uri, params.TextDocument.Version, text)
	sendDiagnosticNotification(ctx, doc)
	return nil
}

// TextDocumentDidClose forgets the buffer and clears its diagnostics.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	commonlog.GetLogger("asparse.lsp").Debugf("closed %s", uri)

	h.mu.Lock()
	delete(h.docs, uri)
	h.mu.Unlock()

	if ctx == nil || ctx.Notify == nil {
		return nil
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// TextDocumentCompletion offers the reserved and contextual keywords.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	kind := protocol.CompletionItemKindKeyword
	var items []protocol.CompletionItem

	seen := make(map[string]bool)
	add := func(word string) {
		if seen[word] || !isLetter(word[0]) {
			return
		}
		seen[word] = true
		items = append(items, protocol.CompletionItem{Label: word, Kind: &kind})
	}

	for k := token.AUTO; k.IsReserved(); k++ {
		add(k.Definition())
	}
	for _, w := range token.ContextualWords() {
		add(w)
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the
// entire document.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc)),
	}, nil
}

// TextDocumentDocumentSymbol returns the hierarchical outline of a document.
func (h *Handler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return doc.documentSymbols(), nil
}

// TextDocumentHover shows the chain of syntax nodes enclosing the cursor.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	n := doc.result.NodeAt(doc.offset(params.Position))
	if n == nil || n.Parent == nil {
		return nil, nil
	}

	r := doc.rangeOf(n.Pos, n.End())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describePath(n, doc.result.Source),
		},
		Range: &r,
	}, nil
}

// describePath renders the ancestors of n from the outermost declaration
// inwards, naming the nodes that have a name.
func describePath(n *ast.Node, source string) string {
	var parts []string
	for ; n != nil && n.Parent != nil; n = n.Parent {
		if n.Type == ast.SCRIPT {
			continue
		}
		part := n.Type.String()
		switch {
		case n.IsTerminal():
			part += fmt.Sprintf(" `%s`", n.Text(source))
		case n.Name(source) != "":
			part += fmt.Sprintf(" `%s`", n.Name(source))
		}
		parts = append(parts, part)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " › ")
}

func (h *Handler) update(uri protocol.DocumentUri, version protocol.Integer, text string) *document {
	result := parser.ParseSource(uri, text, h.opts)
	doc := newDocument(uri, version, result)

	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()

	commonlog.GetLogger("asparse.lsp").Debugf("parsed %s: %d errors, %d warnings", uri, len(result.Errors), len(result.Warnings))
	return doc
}

// getOrLoad returns the open document for uri. Documents the client never
// opened are read from disk.
func (h *Handler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc = h.update(uri, 0, string(content))
	sendDiagnosticNotification(ctx, doc)
	return doc, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) to C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, doc *document) {
	log := commonlog.GetLogger("asparse.lsp")
	diagnostics := doc.ConvertDiagnostics()

	if log.AllowLevel(commonlog.Debug) {
		if data, err := json.MarshalIndent(diagnostics, "", "  "); err == nil {
			log.Debugf("sending diagnostics: %s", data)
		}
	}

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
