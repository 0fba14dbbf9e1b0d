package dashboard

import (
	"embed"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	template "github.com/goliatone/go-template"
)

const templatesDir = "templates"

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Renderer renders a named page template into out.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// NewTemplateRenderer loads the dashboard page templates. An empty dir uses
// the templates compiled into the binary; otherwise dir must hold a
// dashboard.html that replaces the bundled one.
func NewTemplateRenderer(dir string) (Renderer, error) {
	var (
		source fs.FS = embeddedTemplates
		base         = templatesDir
	)
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, defaultTemplate)); err != nil {
			return nil, err
		}
		source = os.DirFS(filepath.Dir(dir))
		base = filepath.Base(dir)
	}
	return template.NewRenderer(
		template.WithFS(source),
		template.WithBaseDir(base),
		template.WithExtension(".html"),
	)
}
