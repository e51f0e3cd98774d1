// Package view defines the node tree the pages hand to the host's renderer.
// The engine only builds these trees; turning them into real UI is the
// renderer's job.
package view

import "strings"

// Attr is a single node attribute (class, src, href, …).
type Attr struct {
	Key   string
	Value string
}

// Node is one element of the view tree. Interactive nodes carry the message
// the host should deliver when they are activated.
type Node struct {
	Tag      string
	Text     string
	Attrs    []Attr
	Children []*Node
	Msg      any
}

// El builds an element node.
func El(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// Text builds a text node.
func Text(s string) *Node { return &Node{Text: s} }

// Attr adds an attribute and returns the node for chaining.
func (n *Node) Attr(key, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Class is shorthand for the class attribute.
func (n *Node) Class(value string) *Node { return n.Attr("class", value) }

// OnActivate attaches the activation message.
func (n *Node) OnActivate(msg any) *Node {
	n.Msg = msg
	return n
}

// Append adds children and returns the node.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// AttrValue returns the first value of the named attribute.
func (n *Node) AttrValue(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// ContainsText reports whether any descendant text node contains s.
// Primarily a test helper.
func (n *Node) ContainsText(s string) bool {
	if strings.Contains(n.Text, s) {
		return true
	}
	for _, c := range n.Children {
		if c.ContainsText(s) {
			return true
		}
	}
	return false
}

// Plain flattens the tree into whitespace-separated text, the renderer the
// CLI binary uses.
func (n *Node) Plain() string {
	var b strings.Builder
	n.plain(&b)
	return strings.TrimSpace(b.String())
}

func (n *Node) plain(b *strings.Builder) {
	if n.Text != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.Text)
	}
	for _, c := range n.Children {
		c.plain(b)
	}
}
