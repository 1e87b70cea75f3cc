// Package docs embeds the user documentation of the stock command.
//
// Each markdown file is a topic named after the file. readme.md lists them.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// index is the topic shown when none is requested. It is not part of Topics.
const index = "readme"

// Topic returns the markdown content of a topic. "*" is every topic.
func Topic(name string) (string, error) {
	if name == "*" {
		return Join(Topics()...)
	}
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, try one of %s: %w", name, strings.Join(Topics(), ", "), err)
	}
	return string(content), nil
}

// Join returns several topics, one after the other.
func Join(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{index}
	}
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Topics lists the available topic names in alphabetical order.
func Topics() []string {
	matches, _ := fs.Glob(files, "*.md")
	var names []string
	for _, m := range matches {
		if name := strings.TrimSuffix(m, ".md"); name != index {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
