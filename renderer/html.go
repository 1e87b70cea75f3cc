package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates
var templates embed.FS

var printPage = template.Must(template.ParseFS(templates, "templates/print.html"))

// DefaultPrintFile is the file written by the print command when none is given.
const DefaultPrintFile = "inventory_print.html"

// markdown converts GitHub flavored tables, which RenderReport emits.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// WriteHTML writes the report as a standalone printable HTML page.
func WriteHTML(w io.Writer, rep *Report) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(RenderReport(rep)), &body); err != nil {
		return fmt.Errorf("could not convert report to html: %w", err)
	}
	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: "Inventory Print",
		Body:  template.HTML(body.String()),
	}
	if err := printPage.Execute(w, data); err != nil {
		return fmt.Errorf("could not render print page: %w", err)
	}
	return nil
}
