package structure

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Template is a folder tree: each key is a folder name, each value is the
// subtree beneath it. A leaf folder is an empty object.
type Template map[string]Template

// Parse decodes a JSON template. The document must be an object at every
// level; anything else (array, string, number) is a malformed template.
func Parse(data []byte) (Template, error) {
	var tmpl Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("template is not a nested JSON object: %w", err)
	}
	if tmpl == nil {
		return nil, fmt.Errorf("template is not a nested JSON object: got null")
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return tmpl, nil
}

// Load reads and parses a template file.
func Load(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	tmpl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid template %s: %w", path, err)
	}
	return tmpl, nil
}

// Validate checks every key in the tree is a usable path segment. It runs
// over the whole template before anything touches the filesystem, so a bad
// template never leaves a partial tree behind.
func (t Template) Validate() error {
	return t.validate("")
}

func (t Template) validate(prefix string) error {
	for name, sub := range t {
		if err := validateSegment(name); err != nil {
			if prefix != "" {
				return fmt.Errorf("under %q: %w", prefix, err)
			}
			return err
		}
		child := name
		if prefix != "" {
			child = prefix + "/" + name
		}
		if err := sub.validate(child); err != nil {
			return err
		}
	}
	return nil
}

func validateSegment(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty folder name")
	case name == "." || name == "..":
		return fmt.Errorf("folder name %q is not allowed", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("folder name %q contains a path separator", name)
	}
	return nil
}

// Folders flattens the tree into the ordered list of paths, parents before
// children. JSON objects decode into maps with no order, so siblings are
// sorted to keep the plan deterministic.
func (t Template) Folders(root string) []string {
	var out []string
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := root + "/" + name
		if root == "" {
			path = name
		}
		out = append(out, path)
		out = append(out, t[name].Folders(path)...)
	}
	return out
}

// Count returns the total number of folders the template describes.
func (t Template) Count() int {
	n := len(t)
	for _, sub := range t {
		n += sub.Count()
	}
	return n
}
