package ast

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ExportNode is a plain copy of a syntax tree suitable for serialization.
type ExportNode struct {
	Type     string        `yaml:"type" json:"type"`
	Token    string        `yaml:"token,omitempty" json:"token,omitempty"`
	Pos      int           `yaml:"pos" json:"pos"`
	Length   int           `yaml:"length" json:"length"`
	Text     string        `yaml:"text,omitempty" json:"text,omitempty"`
	Children []*ExportNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// Export copies the tree rooted at n. Only terminal nodes carry their text.
func Export(n *Node, source string) *ExportNode {
	if n == nil {
		return nil
	}
	out := &ExportNode{
		Type:   n.Type.String(),
		Pos:    n.Pos,
		Length: n.Length,
	}
	if n.IsTerminal() {
		out.Token = n.TokenKind.String()
		out.Text = n.Text(source)
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		out.Children = append(out.Children, Export(c, source))
	}
	return out
}

func (e *ExportNode) YAML() ([]byte, error) {
	return yaml.Marshal(e)
}

func (e *ExportNode) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
