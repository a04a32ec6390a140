package dom

import (
	"bytes"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Node is an element or text node of the host tree.
type Node = html.Node

var selectorCache sync.Map // string -> cascadia.Selector

func compile(sel string) cascadia.Selector {
	if cached, ok := selectorCache.Load(sel); ok {
		return cached.(cascadia.Selector)
	}
	s := cascadia.MustCompile(sel)
	selectorCache.Store(sel, s)
	return s
}

// Query returns the first node under n (n included) matching sel.
func Query(n *html.Node, sel string) *html.Node {
	if n == nil {
		return nil
	}
	return compile(sel).MatchFirst(n)
}

// QueryAll returns every node under n (n included) matching sel, in
// document order.
func QueryAll(n *html.Node, sel string) []*html.Node {
	if n == nil {
		return nil
	}
	return compile(sel).MatchAll(n)
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key on n, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes key from n.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// IsDisabled reports whether n carries the disabled attribute.
func IsDisabled(n *html.Node) bool {
	_, ok := Attr(n, "disabled")
	return ok
}

func classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n has class c.
func HasClass(n *html.Node, c string) bool {
	for _, have := range classes(n) {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass adds c to n's class list if missing.
func AddClass(n *html.Node, c string) {
	if n == nil || HasClass(n, c) {
		return
	}
	SetAttr(n, "class", strings.Join(append(classes(n), c), " "))
}

// RemoveClass drops c from n's class list.
func RemoveClass(n *html.Node, c string) {
	if n == nil {
		return
	}
	var keep []string
	for _, have := range classes(n) {
		if have != c {
			keep = append(keep, have)
		}
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// SetText replaces n's children with a single text node.
func SetText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// OuterHTML renders n and its subtree.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// PathOf returns the child-index path from root down to n.
func PathOf(root, n *html.Node) ([]int, bool) {
	var path []int
	for c := n; c != root; c = c.Parent {
		if c == nil || c.Parent == nil {
			return nil, false
		}
		i := 0
		for s := c.Parent.FirstChild; s != c; s = s.NextSibling {
			i++
		}
		path = append(path, i)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path, true
}

// NodeAt follows a path produced by PathOf.
func NodeAt(root *html.Node, path []int) *html.Node {
	n := root
	for _, idx := range path {
		c := n.FirstChild
		for i := 0; c != nil && i < idx; i++ {
			c = c.NextSibling
		}
		if c == nil {
			return nil
		}
		n = c
	}
	return n
}
