// Package routes registers demo pages in an Angular routes file by editing
// its text in place.
package routes

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/okra-platform/showcase/internal/writer"
)

// DefaultKeyPattern matches a route list assigned to any identifier ending in
// "routes" or "Routes", typed or not: `routes: Routes = [`,
// `export const appRoutes: Routes = [`, `const docsRoutes = [`.
const DefaultKeyPattern = `\b\w*[Rr]outes\s*(?::\s*Routes\s*)?=\s*\[`

var (
	ErrRouteListNotFound    = errors.New("route list not found")
	ErrAmbiguousRouteList   = errors.New("route list key appears more than once")
	ErrNoImports            = errors.New("no import statements found")
	ErrImportsNotContiguous = errors.New("import statements are not contiguous")
)

var (
	importStart    = regexp.MustCompile(`^import\b`)
	importComplete = regexp.MustCompile(`(from\s*['"][^'"]+['"]|^import\s+['"][^'"]+['"])\s*;?\s*$`)
	routePath      = regexp.MustCompile(`\bpath:\s*['"]([^'"]*)['"]`)
)

// Route is a page to register.
type Route struct {
	// Path is the URL path segment (e.g. "step-change-event")
	Path string

	// Title is the page title
	Title string

	// Component is the page component class
	Component string

	// ImportPath is the module specifier the component is imported from
	ImportPath string
}

// Registrar edits route files whose route list starts with Key.
type Registrar struct {
	// Key is the literal text that opens the route list, up to and including
	// "[". Empty means any list matching DefaultKeyPattern.
	Key string
}

// Register adds route to contents, locating the list with DefaultKeyPattern.
func Register(contents string, route Route) (string, error) {
	return Registrar{}.Register(contents, route)
}

// Register returns contents with a new route object appended to the route
// list and a new import line placed before the last import statement.
//
// It is not idempotent: registering the same route twice produces two
// entries and two imports.
func (r Registrar) Register(contents string, route Route) (string, error) {
	withRoute, err := r.insertRoute(contents, route)
	if err != nil {
		return "", err
	}

	return insertImport(withRoute, importLine(route))
}

func (r Registrar) keyPattern() string {
	if r.Key == "" {
		return DefaultKeyPattern
	}
	return regexp.QuoteMeta(r.Key)
}

func (r Registrar) describeKey() string {
	if r.Key == "" {
		return "a route list assigned to an identifier ending in Routes"
	}
	return fmt.Sprintf("%q", r.Key)
}

func (r Registrar) listPattern() *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + r.keyPattern() + `(.*?)\];`)
}

// list returns the byte offsets of the route list body, between the opening
// "[" and the closing "];".
func (r Registrar) list(contents string) (int, int, error) {
	key := regexp.MustCompile(r.keyPattern())
	switch n := len(key.FindAllStringIndex(contents, -1)); {
	case n == 0:
		return 0, 0, fmt.Errorf("%w: missing %s", ErrRouteListNotFound, r.describeKey())
	case n > 1:
		return 0, 0, fmt.Errorf("%w: %s found %d times", ErrAmbiguousRouteList, r.describeKey(), n)
	}

	loc := r.listPattern().FindStringSubmatchIndex(contents)
	if loc == nil {
		return 0, 0, fmt.Errorf("%w: no closing \"];\" after %s", ErrRouteListNotFound, r.describeKey())
	}
	return loc[2], loc[3], nil
}

func (r Registrar) insertRoute(contents string, route Route) (string, error) {
	start, end, err := r.list(contents)
	if err != nil {
		return "", err
	}

	body := contents[start:end]
	indent := detectIndent(body)

	head := withTrailingComma(strings.TrimRight(body, " \t\r\n"))

	var b strings.Builder
	b.WriteString(contents[:start])
	b.WriteString(head)
	b.WriteString("\n")
	b.WriteString(routeObject(route, indent))
	b.WriteString("\n")
	b.WriteString(contents[end:])
	return b.String(), nil
}

func routeObject(route Route, indent string) string {
	w := writer.NewWriter(indent, 1)
	w.WriteBlock("{", "},", func() {
		w.WriteLinef("path: '%s',", quote(route.Path))
		w.WriteLinef("title: '%s',", quote(route.Title))
		w.WriteLine("pathMatch: 'full',")
		w.WriteLinef("component: %s,", route.Component)
	})
	return w.String()
}

// withTrailingComma makes sure the last entry of a route list body ends with
// a comma. The comma goes right after the entry, ahead of a trailing line
// comment.
func withTrailingComma(body string) string {
	lines := strings.Split(body, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		code := strings.TrimRight(stripLineComment(lines[i]), " \t\r")
		if trimmed := strings.TrimSpace(code); trimmed == "" || isComment(trimmed) {
			continue
		}
		if strings.HasSuffix(code, ",") {
			return body
		}
		lines[i] = code + "," + lines[i][len(code):]
		return strings.Join(lines, "\n")
	}
	return body
}

// stripLineComment cuts line at a "//" comment that is not inside a string.
func stripLineComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}
	return line
}

func importLine(route Route) string {
	return fmt.Sprintf("import { %s } from '%s';", route.Component, quote(route.ImportPath))
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// detectIndent returns the leading whitespace of the first non-blank line in
// body, or two spaces.
func detectIndent(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if ws := line[:len(line)-len(strings.TrimLeft(line, " \t"))]; ws != "" {
			return ws
		}
		break
	}
	return "  "
}

// insertImport places line immediately before the last import statement of
// contents. The import block has to be contiguous.
func insertImport(contents, line string) (string, error) {
	lines := strings.Split(contents, "\n")

	starts, err := importStarts(lines)
	if err != nil {
		return "", err
	}

	last := starts[len(starts)-1]
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:last]...)
	out = append(out, line)
	out = append(out, lines[last:]...)
	return strings.Join(out, "\n"), nil
}

// importStarts returns the line indexes where import statements begin. Between
// the first and the last one only imports, blank lines and comments may
// appear.
func importStarts(lines []string) ([]int, error) {
	var starts []int
	for i, l := range lines {
		if importStart.MatchString(l) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil, ErrNoImports
	}

	open := false
	for i := starts[0]; i <= starts[len(starts)-1]; i++ {
		l := strings.TrimSpace(lines[i])
		switch {
		case importStart.MatchString(lines[i]):
			if open {
				return nil, fmt.Errorf("%w: line %d starts an import inside another", ErrImportsNotContiguous, i+1)
			}
			open = !importComplete.MatchString(l)
		case open:
			open = !importComplete.MatchString(l)
		case l == "", isComment(l):
		default:
			return nil, fmt.Errorf("%w: line %d: %s", ErrImportsNotContiguous, i+1, l)
		}
	}
	return starts, nil
}

func isComment(l string) bool {
	return strings.HasPrefix(l, "//") || strings.HasPrefix(l, "/*") || strings.HasPrefix(l, "*")
}

// Table is a read-only view of a routes file.
type Table struct {
	// Paths of the registered routes, in file order
	Paths []string

	// Imports holds the first line of every import statement
	Imports []string
}

// Parse reads the route list and import statements of contents.
func (r Registrar) Parse(contents string) (*Table, error) {
	start, end, err := r.list(contents)
	if err != nil {
		return nil, err
	}

	t := &Table{}
	for _, m := range routePath.FindAllStringSubmatch(contents[start:end], -1) {
		t.Paths = append(t.Paths, m[1])
	}

	lines := strings.Split(contents, "\n")
	starts, err := importStarts(lines)
	if err != nil && !errors.Is(err, ErrNoImports) {
		return nil, err
	}
	for _, i := range starts {
		t.Imports = append(t.Imports, lines[i])
	}
	return t, nil
}
