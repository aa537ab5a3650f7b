package pptx

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// child returns the first child element with the given local name. It is
// nil-safe so lookups can be chained.
func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func children(el *etree.Element, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// attr returns the attribute value or "" when el is nil or lacks key.
func attr(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	return el.SelectAttrValue(key, "")
}

func int64Attr(el *etree.Element, key string) (int64, error) {
	v := el.SelectAttrValue(key, "")
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %s=%q: %w", key, v, err)
	}
	return n, nil
}
