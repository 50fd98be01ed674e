package xmltree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/handiism/lastfm-graph/internal/lastfm"
)

const (
	statusOK     = "ok"
	statusFailed = "failed"
)

// element adapts an etree element to lastfm.Node.
type element struct {
	el *etree.Element
}

// FromElement wraps an etree element.
func FromElement(el *etree.Element) lastfm.Node {
	return element{el: el}
}

func (e element) FindChildText(path string) (string, bool) {
	child := e.el.FindElement(path)
	if child == nil {
		return "", false
	}
	return child.Text(), true
}

func (e element) FindChild(path string) (lastfm.Node, bool) {
	child := e.el.FindElement(path)
	if child == nil {
		return nil, false
	}
	return element{el: child}, true
}

func (e element) FindAll(tag string) []lastfm.Node {
	children := e.el.SelectElements(tag)
	nodes := make([]lastfm.Node, len(children))
	for i, c := range children {
		nodes[i] = element{el: c}
	}
	return nodes
}

func (e element) Attr(name string) (string, bool) {
	attr := e.el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// Parse reads a Last.fm response and returns its lfm root element.
func Parse(data []byte) (lastfm.Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", lastfm.ErrMalformedResponse, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "lfm" {
		return nil, fmt.Errorf("%w: missing lfm envelope", lastfm.ErrMalformedResponse)
	}

	switch status := root.SelectAttrValue("status", ""); status {
	case statusOK:
		return element{el: root}, nil
	case statusFailed:
		return nil, serviceError(root)
	default:
		return nil, fmt.Errorf("%w: unknown status %q", lastfm.ErrMalformedResponse, status)
	}
}

// serviceError builds the RemoteError described by a failed envelope.
func serviceError(root *etree.Element) error {
	errEl := root.SelectElement("error")
	if errEl == nil {
		return &lastfm.RemoteError{Message: "failed response without error element"}
	}
	code, _ := strconv.Atoi(errEl.SelectAttrValue("code", ""))
	return &lastfm.RemoteError{
		Code:    code,
		Message: strings.TrimSpace(errEl.Text()),
	}
}
