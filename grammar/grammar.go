// Package grammar defines the selector language used to query syntax trees,
// for example `Class[Player] >> Function:0` or `Function > StatementBlock`.
package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Selector is a first step followed by any number of axis-linked steps.
type Selector struct {
	Pos   lexer.Position
	First *Step   `@@`
	Rest  []*Link `@@*`
}

type Link struct {
	Axis string `@( Descendant | ">" )`
	Step *Step  `@@`
}

// Step matches nodes of one type, or any type with '*'. Name filters by
// source text or declared identifier, Index keeps a single match.
type Step struct {
	Pos   lexer.Position
	Type  string  `@( Ident | "*" )`
	Name  *string `( "[" @( Ident | String ) "]" )?`
	Index *int    `( ":" @Integer )?`
}

const (
	AxisChild      = ">"
	AxisDescendant = ">>"
)
