// Package xmltree is a permissive XML reader producing an index-addressed
// node arena. Names keep their namespace prefixes verbatim ("ttm:agent"),
// character data becomes synthetic "#text" children, and malformed input
// yields whatever was read before the damage instead of an error.
package xmltree

import (
	"encoding/xml"
	"io"
	"strings"
)

// reserved name of synthetic text nodes
const TextName = "#text"

// name of the synthetic root every document hangs off
const DocumentName = "#document"

// index of a node inside its tree
type NodeID int

// the root of every tree
const Root NodeID = 0

// ordered attribute, name kept as written
type Attr struct {
	Name  string
	Value string
}

// single element or text node
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Parent   NodeID
	Children []NodeID
}

// arena of nodes, node 0 is the document root
type Tree struct {
	nodes []Node
}

// reads the whole document. unknown entities, stray end tags and unclosed
// elements are tolerated; a syntax error stops reading and keeps the tree
// built so far.
func Parse(s string) *Tree {
	t := &Tree{nodes: []Node{{Name: DocumentName, Parent: -1}}}

	d := xml.NewDecoder(strings.NewReader(s))
	d.Strict = false
	d.Entity = xml.HTMLEntity
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	stack := []NodeID{Root}
	for {
		tok, err := d.RawToken()
		if err != nil {
			// io.EOF or a syntax error, either way keep what was read
			break
		}

		parent := stack[len(stack)-1]
		switch tok := tok.(type) {
		case xml.StartElement:
			n := Node{Name: qualified(tok.Name), Parent: parent}
			if len(tok.Attr) > 0 {
				n.Attrs = make([]Attr, len(tok.Attr))
				for i, a := range tok.Attr {
					n.Attrs[i] = Attr{Name: qualified(a.Name), Value: a.Value}
				}
			}
			id := t.add(n)
			stack = append(stack, id)
		case xml.EndElement:
			name := qualified(tok.Name)
			for i := len(stack) - 1; i > 0; i-- {
				if t.nodes[stack[i]].Name == name {
					stack = stack[:i]
					break
				}
			}
		case xml.CharData:
			t.appendText(parent, string(tok))
		}
	}

	return t
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func (t *Tree) add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	p := &t.nodes[n.Parent]
	p.Children = append(p.Children, id)
	return id
}

// adjacent character data (text split by CDATA sections) shares one node
func (t *Tree) appendText(parent NodeID, text string) {
	if text == "" {
		return
	}
	if kids := t.nodes[parent].Children; len(kids) > 0 {
		last := kids[len(kids)-1]
		if t.nodes[last].Name == TextName {
			t.nodes[last].Text += text
			return
		}
	}
	t.add(Node{Name: TextName, Text: text, Parent: parent})
}

// number of nodes including the document root
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

func (t *Tree) Name(id NodeID) string {
	return t.nodes[id].Name
}

func (t *Tree) IsText(id NodeID) bool {
	return t.nodes[id].Name == TextName
}

// parent of id, -1 for the root
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].Parent
}

func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].Children
}

// attribute value by exact name
func (t *Tree) Attr(id NodeID, name string) (string, bool) {
	for _, a := range t.nodes[id].Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// first present attribute among names
func (t *Tree) AttrAny(id NodeID, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := t.Attr(id, name); ok {
			return v, true
		}
	}
	return "", false
}

// concatenated text of all descendant text nodes
func (t *Tree) Text(id NodeID) string {
	n := &t.nodes[id]
	if n.Name == TextName {
		return n.Text
	}
	var sb strings.Builder
	t.walk(id, func(c NodeID) bool {
		if t.nodes[c].Name == TextName {
			sb.WriteString(t.nodes[c].Text)
		}
		return true
	})
	return sb.String()
}

// descendants of id (excluding id) matching pred, in document order
func (t *Tree) Find(id NodeID, pred func(*Node) bool) []NodeID {
	var out []NodeID
	t.walk(id, func(c NodeID) bool {
		if pred(&t.nodes[c]) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// first descendant of id named name
func (t *Tree) FindFirst(id NodeID, name string) (NodeID, bool) {
	found := NodeID(-1)
	t.walk(id, func(c NodeID) bool {
		if t.nodes[c].Name == name {
			found = c
			return false
		}
		return true
	})
	return found, found >= 0
}

// preorder over descendants, stops when fn returns false
func (t *Tree) walk(id NodeID, fn func(NodeID) bool) bool {
	for _, c := range t.nodes[id].Children {
		if !fn(c) || !t.walk(c, fn) {
			return false
		}
	}
	return true
}

// true when name equals local or ends with ":"+local
func HasLocalName(name, local string) bool {
	return name == local || strings.HasSuffix(name, ":"+local)
}
