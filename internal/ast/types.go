package ast

import "strings"

type NodeType int

const (
	UNDEFINED NodeType = iota

	// Declarations
	SCRIPT
	FUNCTION
	CLASS
	INTERFACE
	ENUM
	TYPEDEF
	FUNC_DEF
	VIRTUAL_PROPERTY
	NAMESPACE
	MIXIN
	IMPORT
	DECLARATION
	PARAMETER_LIST

	// Terminals and types
	CONSTANT
	DATA_TYPE
	IDENTIFIER
	SCOPE

	// Statements
	STATEMENT_BLOCK
	EXPRESSION_STATEMENT
	IF
	FOR
	WHILE
	DO_WHILE
	RETURN
	BREAK
	CONTINUE
	SWITCH
	CASE
	TRY_CATCH

	// Expressions
	ASSIGNMENT
	CONDITION
	EXPRESSION
	EXPR_TERM
	EXPR_PRE_OP
	EXPR_POST_OP
	EXPR_OPERATOR
	EXPR_VALUE
	FUNCTION_CALL
	CONSTRUCT_CALL
	ARG_LIST
	NAMED_ARGUMENT
	VARIABLE_ACCESS
	CAST
	INIT_LIST
	LIST_PATTERN

	nodeTypeCount
)

var nodeTypeNames = [...]string{
	UNDEFINED:            "Undefined",
	SCRIPT:               "Script",
	FUNCTION:             "Function",
	CLASS:                "Class",
	INTERFACE:            "Interface",
	ENUM:                 "Enum",
	TYPEDEF:              "Typedef",
	FUNC_DEF:             "FuncDef",
	VIRTUAL_PROPERTY:     "VirtualProperty",
	NAMESPACE:            "Namespace",
	MIXIN:                "Mixin",
	IMPORT:               "Import",
	DECLARATION:          "Declaration",
	PARAMETER_LIST:       "ParameterList",
	CONSTANT:             "Constant",
	DATA_TYPE:            "DataType",
	IDENTIFIER:           "Identifier",
	SCOPE:                "Scope",
	STATEMENT_BLOCK:      "StatementBlock",
	EXPRESSION_STATEMENT: "ExpressionStatement",
	IF:                   "If",
	FOR:                  "For",
	WHILE:                "While",
	DO_WHILE:             "DoWhile",
	RETURN:               "Return",
	BREAK:                "Break",
	CONTINUE:             "Continue",
	SWITCH:               "Switch",
	CASE:                 "Case",
	TRY_CATCH:            "TryCatch",
	ASSIGNMENT:           "Assignment",
	CONDITION:            "Condition",
	EXPRESSION:           "Expression",
	EXPR_TERM:            "ExprTerm",
	EXPR_PRE_OP:          "ExprPreOp",
	EXPR_POST_OP:         "ExprPostOp",
	EXPR_OPERATOR:        "ExprOperator",
	EXPR_VALUE:           "ExprValue",
	FUNCTION_CALL:        "FunctionCall",
	CONSTRUCT_CALL:       "ConstructCall",
	ARG_LIST:             "ArgList",
	NAMED_ARGUMENT:       "NamedArgument",
	VARIABLE_ACCESS:      "VariableAccess",
	CAST:                 "Cast",
	INIT_LIST:            "InitList",
	LIST_PATTERN:         "ListPattern",
}

func (t NodeType) String() string {
	if t >= 0 && t < nodeTypeCount {
		return nodeTypeNames[t]
	}
	return "NodeType(?)"
}

// NodeTypes returns every node type in declaration order.
func NodeTypes() []NodeType {
	types := make([]NodeType, 0, nodeTypeCount)
	for t := UNDEFINED; t < nodeTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// LookupNodeType resolves a node type by name. Case and underscores are
// ignored, so "StatementBlock", "statementblock" and "STATEMENT_BLOCK" all
// resolve to STATEMENT_BLOCK.
func LookupNodeType(name string) (NodeType, bool) {
	key := normalizeTypeName(name)
	for t := UNDEFINED; t < nodeTypeCount; t++ {
		if normalizeTypeName(nodeTypeNames[t]) == key {
			return t, true
		}
	}
	return UNDEFINED, false
}

func normalizeTypeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}
