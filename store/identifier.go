package store

import (
	"net/url"
	"strings"
)

const identifierPrefix = "tweak:"

// Identifier derives the stable identifier of the tweak named name in the given category
// and collection. It is the persistence key of the tweak.
//
// Each component is path-escaped, so the '/' separator never occurs inside a component and
// distinct triples always map to distinct identifiers.
func Identifier(category, collection, name string) string {
	var b strings.Builder
	b.Grow(len(identifierPrefix) + len(category) + len(collection) + len(name) + 2)
	b.WriteString(identifierPrefix)
	b.WriteString(url.PathEscape(category))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(collection))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(name))
	return b.String()
}

// SplitIdentifier is the inverse of Identifier.
func SplitIdentifier(id string) (category, collection, name string, ok bool) {
	rest, found := strings.CutPrefix(id, identifierPrefix)
	if !found {
		return "", "", "", false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 {
		return "", "", "", false
	}
	var err error
	if category, err = url.PathUnescape(parts[0]); err != nil {
		return "", "", "", false
	}
	if collection, err = url.PathUnescape(parts[1]); err != nil {
		return "", "", "", false
	}
	if name, err = url.PathUnescape(parts[2]); err != nil {
		return "", "", "", false
	}
	return category, collection, name, true
}
