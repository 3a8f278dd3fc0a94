// Package render turns named template sets into files for a set of
// placeholder values.
//
// A template set is a directory under the renderer root. File and directory
// names may carry __name__ placeholders; file bodies use <%= .name %> actions
// so that Angular {{ }} interpolation passes through untouched. A trailing
// ".template" extension is dropped from the destination path.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/hashicorp/go-multierror"

	"github.com/okra-platform/showcase/internal/naming"
)

//go:embed all:templates
var templatesFS embed.FS

// DefaultRoot is the directory of the embedded template sets.
const DefaultRoot = "templates"

const (
	leftDelim      = "<%="
	rightDelim     = "%>"
	templateSuffix = ".template"
)

var (
	ErrUnknownTemplateSet    = errors.New("unknown template set")
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")
)

var (
	pathPlaceholder = regexp.MustCompile(`__([A-Za-z][A-Za-z0-9]*)__`)
	missingKey      = regexp.MustCompile(`map has no entry for key "([^"]+)"`)
)

// File is one rendered template.
type File struct {
	// Path is the destination path relative to the set's output directory
	Path string

	// Content is the rendered body
	Content string

	// Template is the source path inside the template set
	Template string
}

// Renderer renders template sets stored in an fs.FS.
type Renderer struct {
	fsys fs.FS
	root string
}

// New creates a renderer over the template sets found under root in fsys.
func New(fsys fs.FS, root string) *Renderer {
	if root == "" {
		root = "."
	}
	return &Renderer{
		fsys: fsys,
		root: root,
	}
}

// NewDefault creates a renderer over the embedded template sets.
func NewDefault() *Renderer {
	return New(templatesFS, DefaultRoot)
}

// Builtin returns the embedded template sets, rooted at the set directories
func Builtin() fs.FS {
	sub, err := fs.Sub(templatesFS, DefaultRoot)
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return sub
}

// Sets returns the names of the available template sets.
func (r *Renderer) Sets() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read template root %s: %w", r.root, err)
	}

	var sets []string
	for _, e := range entries {
		if e.IsDir() {
			sets = append(sets, e.Name())
		}
	}
	sort.Strings(sets)
	return sets, nil
}

// Render renders every file of the named set. Either every file renders or
// none is returned; errors from all files are reported together.
func (r *Renderer) Render(set string, vars map[string]string) ([]File, error) {
	setDir := path.Join(r.root, set)
	info, err := fs.Stat(r.fsys, setDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplateSet, set)
	}

	var files []File
	var result *multierror.Error

	err = fs.WalkDir(r.fsys, setDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, setDir+"/")
		f, err := r.renderFile(p, rel, vars)
		if err != nil {
			result = multierror.Append(result, err)
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk template set %s: %w", set, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (r *Renderer) renderFile(src, rel string, vars map[string]string) (File, error) {
	dest, err := RenderPath(rel, vars)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", rel, err)
	}

	data, err := fs.ReadFile(r.fsys, src)
	if err != nil {
		return File{}, fmt.Errorf("%s: failed to read template: %w", rel, err)
	}

	body, err := RenderBody(rel, string(data), vars)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", rel, err)
	}

	return File{
		Path:     dest,
		Content:  body,
		Template: rel,
	}, nil
}

// RenderPath substitutes __name__ placeholders in p and drops a trailing
// ".template" extension.
func RenderPath(p string, vars map[string]string) (string, error) {
	var missing []string
	out := pathPlaceholder.ReplaceAllStringFunc(p, func(m string) string {
		key := pathPlaceholder.FindStringSubmatch(m)[1]
		v, ok := vars[key]
		if !ok {
			missing = append(missing, key)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w in path: %s", ErrUnresolvedPlaceholder, strings.Join(missing, ", "))
	}

	return strings.TrimSuffix(out, templateSuffix), nil
}

// RenderBody executes body as a template against vars. Referencing a name
// missing from vars is an error.
func RenderBody(name, body string, vars map[string]string) (string, error) {
	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Option("missingkey=error").
		Funcs(template.FuncMap{
			"dasherize": naming.Dasherize,
			"classify":  naming.Classify,
			"title":     naming.Title,
		}).
		Parse(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		if m := missingKey.FindStringSubmatch(err.Error()); m != nil {
			return "", fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, m[1])
		}
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
