package errors

// Diagnostic codes reported by the parser.
//
// Code ranges:
// P0001-P0099: Syntax errors
// P0800-P0899: Warnings
// P0900-P0999: Informational notes
const (
	// P0001: A token that cannot start or continue the current construct
	ErrorUnexpectedToken = "P0001"

	// P0002: A specific token (or one of a set) was required
	ErrorExpectedToken = "P0002"

	ErrorExpectedIdentifier = "P0003"
	ErrorExpectedDataType   = "P0004"
	ErrorExpectedExpression = "P0005"
	ErrorExpectedConstant   = "P0006"

	// P0007: Input ended inside an open construct
	ErrorUnexpectedEOF = "P0007"

	// P0008: Variable declaration where only a statement may appear
	ErrorUnexpectedVarDecl = "P0008"

	ErrorNonTerminatedString = "P0009"

	// P0010: Class body member that is neither a method nor a property
	ErrorExpectedMethodOrProperty = "P0010"

	ErrorExpectedString = "P0011"
)

const (
	// P0800: Named argument written as 'name = value'
	WarningDeprecatedNamedArg = "P0800"
)

const (
	// P0900: Points at the start of the construct an error occurred in
	InfoWhileParsing = "P0900"
)

// Describe returns a short human readable title for a code.
func Describe(code string) string {
	switch code {
	case ErrorUnexpectedToken:
		return "unexpected token"
	case ErrorExpectedToken:
		return "expected token"
	case ErrorExpectedIdentifier:
		return "expected identifier"
	case ErrorExpectedDataType:
		return "expected data type"
	case ErrorExpectedExpression:
		return "expected expression value"
	case ErrorExpectedConstant:
		return "expected constant"
	case ErrorUnexpectedEOF:
		return "unexpected end of file"
	case ErrorUnexpectedVarDecl:
		return "unexpected variable declaration"
	case ErrorNonTerminatedString:
		return "non-terminated string literal"
	case ErrorExpectedMethodOrProperty:
		return "expected method or property"
	case ErrorExpectedString:
		return "expected string"
	case WarningDeprecatedNamedArg:
		return "deprecated named argument syntax"
	case InfoWhileParsing:
		return "enclosing construct"
	}
	return "unknown diagnostic"
}
