// Package convert turns storage-format page bodies into Markdown for
// tool output and export files.
package convert

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Converter wraps the HTML-to-Markdown engine with the options this
// module needs. Safe for concurrent use.
type Converter struct {
	engine *md.Converter
}

// NewConverter creates a Converter with default rules.
func NewConverter() *Converter {
	return &Converter{engine: md.NewConverter("", true, nil)}
}

// ToMarkdown converts a storage-format body to Markdown. An empty body
// converts to an empty string.
func (c *Converter) ToMarkdown(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	out, err := c.engine.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return out, nil
}
