package schematic

import (
	"fmt"
	"path"

	"github.com/okra-platform/showcase/internal/naming"
	"github.com/okra-platform/showcase/internal/render"
)

// Scaffolder produces the component shell of a demo page. Returned paths are
// relative to the project root.
type Scaffolder interface {
	Scaffold(names naming.Names) ([]render.File, error)
}

// templateScaffolder builds the shell from the component template set.
type templateScaffolder struct {
	renderer Renderer
	pagesDir string
}

// NewTemplateScaffolder creates a Scaffolder that renders ComponentSet into pagesDir.
func NewTemplateScaffolder(renderer Renderer, pagesDir string) Scaffolder {
	return &templateScaffolder{
		renderer: renderer,
		pagesDir: pagesDir,
	}
}

func (s *templateScaffolder) Scaffold(names naming.Names) ([]render.File, error) {
	files, err := s.renderer.Render(ComponentSet, names.Variables())
	if err != nil {
		return nil, fmt.Errorf("failed to render %s templates: %w", ComponentSet, err)
	}
	for i := range files {
		files[i].Path = path.Join(s.pagesDir, files[i].Path)
	}
	return files, nil
}
