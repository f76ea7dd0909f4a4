package xmlutils

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Map is one element of a parsed document, keyed by child tag name.
//
// Values are a trimmed string for leaf elements, a Map for elements with
// children, or []any when a tag repeats under the same parent. Whether a tag
// shows up as a single value or as a list therefore depends on the document,
// so repeatable tags must always go through AsSequence.
type Map map[string]any

// ErrNoRootElement is returned by Parse for documents without any element.
var ErrNoRootElement = errors.New("document has no root element")

type frame struct {
	name     string
	children Map
	text     strings.Builder
}

// Parse converts raw XML into a Map holding the document's root element.
// Attributes, comments and processing instructions are discarded. Text that
// sits next to child elements is dropped.
func Parse(data []byte) (Map, error) {
	dec := NewDecoder(bytes.NewReader(data))

	doc := &frame{children: Map{}}
	stack := []*frame{doc}
	rootClosed := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element <%s> after the root element", t.Name.Local)
			}
			stack = append(stack, &frame{name: t.Name.Local, children: Map{}})
		case xml.EndElement:
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			addChild(parent.children, current.name, current.value())
			rootClosed = len(stack) == 1
		case xml.CharData:
			if len(stack) == 1 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, errors.New("unexpected text outside the root element")
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("unexpected end of document inside <%s>", stack[len(stack)-1].name)
	}
	if len(doc.children) == 0 {
		return nil, ErrNoRootElement
	}
	return doc.children, nil
}

// NewDecoder returns a strict xml.Decoder that understands the legacy
// single-byte encodings bureau exports are sometimes declared with.
func NewDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

func (f *frame) value() any {
	if len(f.children) > 0 {
		return f.children
	}
	return strings.TrimSpace(f.text.String())
}

func addChild(parent Map, name string, value any) {
	existing, ok := parent[name]
	if !ok {
		parent[name] = value
		return
	}
	if list, isList := existing.([]any); isList {
		parent[name] = append(list, value)
		return
	}
	parent[name] = []any{existing, value}
}

// AsSequence normalizes a repeatable node into its ordered mapping elements.
//
// A single mapping becomes a one-element slice, a list keeps its order, and an
// absent or empty element yields nil. Elements that carry text where a
// mapping is expected are reported as an error.
func AsSequence(v any) ([]Map, error) {
	switch node := v.(type) {
	case nil:
		return nil, nil
	case Map:
		return []Map{node}, nil
	case string:
		if node == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("expected element with children, found text %q", truncate(node))
	case []any:
		out := make([]Map, 0, len(node))
		for i, item := range node {
			switch elem := item.(type) {
			case Map:
				out = append(out, elem)
			case string:
				if elem != "" {
					return nil, fmt.Errorf("element %d: expected element with children, found text %q", i, truncate(elem))
				}
			default:
				return nil, fmt.Errorf("element %d: unexpected node type %T", i, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected node type %T", v)
	}
}

// First returns the first mapping of a repeatable node, or nil when there is none.
func First(v any) (Map, error) {
	seq, err := AsSequence(v)
	if err != nil || len(seq) == 0 {
		return nil, err
	}
	return seq[0], nil
}

// MapAt walks path from m and returns the mapping found there. A missing or
// empty element along the way yields nil without error; any other non-mapping
// node is an error, since the path names single-occurrence elements.
func MapAt(m Map, path ...string) (Map, error) {
	current := m
	for i, key := range path {
		if current == nil {
			return nil, nil
		}
		switch node := current[key].(type) {
		case nil:
			return nil, nil
		case Map:
			current = node
		case string:
			if node != "" {
				return nil, fmt.Errorf("%s is text, expected element with children", strings.Join(path[:i+1], "/"))
			}
			return nil, nil
		default:
			return nil, fmt.Errorf("%s is a %T, expected a single element", strings.Join(path[:i+1], "/"), node)
		}
	}
	return current, nil
}

// Text returns the string content of a leaf node. Repeated leaves yield their
// first non-empty value; anything else yields "".
func Text(v any) string {
	switch node := v.(type) {
	case string:
		return node
	case []any:
		for _, item := range node {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// TextAt is Text(m[key]); it is safe on a nil Map.
func (m Map) TextAt(key string) string {
	return Text(m[key])
}

func truncate(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
