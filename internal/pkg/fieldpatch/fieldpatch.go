// Package fieldpatch applies nested-path field patches to stored JSON
// documents.
//
// A Patch maps dot paths to values. When the final segment of a path starts
// with "-=" the named key is deleted instead, so
//
//	Patch{"system.appliedEffects.-=fx1": nil}
//
// removes the fx1 entry from system.appliedEffects.
package fieldpatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DeletePrefix marks the final path segment as a deletion
const DeletePrefix = "-="

// Patch maps dot paths to new values
type Patch map[string]interface{}

// Key joins path segments, escaping characters the path syntax treats specially
func Key(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = escape(segment)
	}
	return strings.Join(escaped, ".")
}

// DeleteKey builds the path that deletes key from the object at parent
func DeleteKey(parent, key string) string {
	if parent == "" {
		return DeletePrefix + escape(key)
	}
	return parent + "." + DeletePrefix + escape(key)
}

// Paths returns the patch paths in the order Apply visits them
func (p Patch) Paths() []string {
	paths := make([]string, 0, len(p))
	for path := range p {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Apply writes every entry of the patch into doc under prefix and returns the
// new document. Deleting a key that does not exist is not an error.
func Apply(doc []byte, prefix string, patch Patch) ([]byte, error) {
	if len(patch) == 0 {
		return doc, nil
	}
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("document is not valid JSON")
	}

	out := doc
	for _, path := range patch.Paths() {
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("empty patch path")
		}

		full := join(prefix, path)
		parent, last := splitLast(full)

		var err error
		if strings.HasPrefix(last, DeletePrefix) {
			target := join(parent, strings.TrimPrefix(last, DeletePrefix))
			out, err = sjson.DeleteBytes(out, target)
		} else {
			out, err = sjson.SetBytes(out, full, patch[path])
		}
		if err != nil {
			return nil, fmt.Errorf("apply %q: %w", path, err)
		}
	}

	return out, nil
}

// Get reads one path from doc
func Get(doc []byte, path string) gjson.Result {
	return gjson.GetBytes(doc, path)
}

func join(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	default:
		return prefix + "." + path
	}
}

// splitLast splits a path at its last unescaped dot
func splitLast(path string) (parent, last string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] != '.' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && path[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return path[:i], path[i+1:]
		}
	}
	return "", path
}

func escape(segment string) string {
	var b strings.Builder
	for _, r := range segment {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
