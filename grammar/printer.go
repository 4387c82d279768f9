package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

func (s *Selector) String() string {
	var b strings.Builder
	b.WriteString(s.First.String())
	for _, l := range s.Rest {
		b.WriteString(" " + l.String())
	}
	return b.String()
}

func (l *Link) String() string {
	return fmt.Sprintf("%s %s", l.Axis, l.Step)
}

func (s *Step) String() string {
	var b strings.Builder
	b.WriteString(s.Type)
	if s.Name != nil {
		name := *s.Name
		if !isIdent(name) {
			name = strconv.Quote(name)
		}
		b.WriteString("[" + name + "]")
	}
	if s.Index != nil {
		b.WriteString(fmt.Sprintf(":%d", *s.Index))
	}
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
