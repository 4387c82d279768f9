package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"asparse/internal/errors"
)

const diagnosticSource = "asparse"

// ConvertDiagnostics transforms parser errors, warnings and infos into LSP
// diagnostics in source order. Each range covers the offending token.
func (d *document) ConvertDiagnostics() []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, diag := range d.result.All() {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    d.rangeOf(diag.Token.Pos, diag.Token.End()),
			Severity: ptrSeverity(severityOf(diag.Level)),
			Code:     &protocol.IntegerOrString{Value: diag.Code},
			Source:   ptrString(diagnosticSource),
			Message:  diag.Message,
		})
	}

	return diagnostics
}

func severityOf(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Error:
		return protocol.DiagnosticSeverityError
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityInformation
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
