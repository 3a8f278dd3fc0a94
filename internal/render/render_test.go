package render

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/showcase/internal/naming"
)

// Test plan:
// 1. Placeholders in paths and bodies are substituted
// 2. Missing placeholders fail the whole set, in paths and in bodies
// 3. Unknown sets are rejected, sets are listed
// 4. The embedded sets render cleanly for a derived name

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"sets/snippet/__selectorSuffix__/__fileNamePrefix__.ts.template": {
			Data: []byte("export class <%= .classNamePrefix %>Example {}\n"),
		},
		"sets/snippet/__selectorSuffix__/README.md": {
			Data: []byte("# <%= .classNamePrefix %> uses {{ interpolation }}\n"),
		},
		"sets/broken/__unknownToken__.ts": {
			Data: []byte("ok\n"),
		},
		"sets/broken/body.ts": {
			Data: []byte("<%= .missing %>\n"),
		},
		"sets/funcs/x.txt": {
			Data: []byte("<%= title .selectorSuffix %>|<%= classify .selectorSuffix %>\n"),
		},
		"sets/empty/.keep": {
			Data: []byte(""),
		},
	}
}

func TestRender_SubstitutesPathsAndBodies(t *testing.T) {
	r := New(testFS(), "sets")
	vars := map[string]string{
		"selectorSuffix":  "my-widget",
		"fileNamePrefix":  "my-widget-example",
		"classNamePrefix": "MyWidget",
	}

	files, err := r.Render("snippet", vars)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "my-widget/README.md", files[0].Path)
	assert.Equal(t, "# MyWidget uses {{ interpolation }}\n", files[0].Content)

	assert.Equal(t, "my-widget/my-widget-example.ts", files[1].Path)
	assert.Equal(t, "export class MyWidgetExample {}\n", files[1].Content)
	assert.Equal(t, "__selectorSuffix__/__fileNamePrefix__.ts.template", files[1].Template)
}

func TestRender_MissingPlaceholderFailsWholeSet(t *testing.T) {
	r := New(testFS(), "sets")

	files, err := r.Render("broken", map[string]string{})
	require.Error(t, err)
	assert.Nil(t, files)
	assert.True(t, errors.Is(err, ErrUnresolvedPlaceholder))
	assert.Contains(t, err.Error(), "unknownToken")
	assert.Contains(t, err.Error(), "missing")
}

func TestRender_MissingPlaceholderInSingleFile(t *testing.T) {
	r := New(testFS(), "sets")

	_, err := r.Render("snippet", map[string]string{
		"selectorSuffix": "my-widget",
		"fileNamePrefix": "my-widget-example",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedPlaceholder))
	assert.Contains(t, err.Error(), "classNamePrefix")
}

func TestRender_NamingFuncs(t *testing.T) {
	r := New(testFS(), "sets")

	files, err := r.Render("funcs", map[string]string{"selectorSuffix": "tab-group"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Tab Group|TabGroup\n", files[0].Content)
}

func TestRender_UnknownSet(t *testing.T) {
	r := New(testFS(), "sets")

	_, err := r.Render("nope", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTemplateSet))
}

func TestRender_FileIsNotASet(t *testing.T) {
	r := New(testFS(), "sets")

	_, err := r.Render("funcs/x.txt", nil)
	assert.True(t, errors.Is(err, ErrUnknownTemplateSet))
}

func TestSets(t *testing.T) {
	sets, err := New(testFS(), "sets").Sets()
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "empty", "funcs", "snippet"}, sets)
}

func TestRenderPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "no placeholders", path: "a/b.ts", want: "a/b.ts"},
		{name: "template suffix dropped", path: "a/b.ts.template", want: "a/b.ts"},
		{name: "dir and file", path: "__selectorSuffix__/__selectorSuffix__-consumer.html", want: "x-y/x-y-consumer.html"},
		{name: "unknown", path: "__nope__/a.ts", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderPath(tt.path, map[string]string{"selectorSuffix": "x-y"})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnresolvedPlaceholder)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderBody_ParseError(t *testing.T) {
	_, err := RenderBody("bad", "<%= .x ", map[string]string{"x": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")
}

func TestDefaultSets_RenderWithoutLeftovers(t *testing.T) {
	r := NewDefault()
	vars := naming.Derive("step-change-event").Variables()

	sets, err := r.Sets()
	require.NoError(t, err)
	assert.Equal(t, []string{"component", "consumer", "example"}, sets)

	for _, set := range sets {
		t.Run(set, func(t *testing.T) {
			files, err := r.Render(set, vars)
			require.NoError(t, err)
			require.NotEmpty(t, files)

			for _, f := range files {
				assert.NotContains(t, f.Path, "__")
				assert.NotContains(t, f.Path, templateSuffix)
				assert.NotContains(t, f.Content, leftDelim)
				assert.NotContains(t, f.Content, rightDelim)
			}
		})
	}
}

func TestDefaultSets_ExamplePaths(t *testing.T) {
	files, err := NewDefault().Render("example", naming.Derive("step-change-event").Variables())
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, f := range files {
		assert.True(t, strings.HasPrefix(f.Path, "step-change-event/"), f.Path)
	}
	assert.Contains(t, files[1].Content, "export class StepChangeEventExampleComponent")
}

func TestBuiltin(t *testing.T) {
	sets, err := New(Builtin(), ".").Sets()
	require.NoError(t, err)
	assert.Equal(t, []string{"component", "consumer", "example"}, sets)
}
