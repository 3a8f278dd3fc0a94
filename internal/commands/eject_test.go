package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/showcase/internal/config"
	"github.com/okra-platform/showcase/internal/render"
)

func TestEjectCommand_Run(t *testing.T) {
	root := newProject(t)
	out := &mockOutput{}
	cmd := &EjectCommand{dir: root, loader: &defaultConfigLoader{}, output: out, templatesFS: render.Builtin()}

	require.NoError(t, cmd.Run(context.Background(), EjectOptions{}))
	assert.Contains(t, out.String(), "✅ Ejected 6 template files to showcase-templates (0 existing files kept)")
	assert.Contains(t, out.String(), "📝 Wrote showcase.json")

	_, err := os.Stat(filepath.Join(root, "showcase-templates", "example", "__selectorSuffix__", "__fileNamePrefix__-example.ts.template"))
	require.NoError(t, err)

	cfg, err := config.LoadConfigFromPath(filepath.Join(root, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "showcase-templates", cfg.TemplatesDir)

	tmplOut := &mockOutput{}
	tmpl := &TemplatesCommand{dir: root, loader: &defaultConfigLoader{}, output: tmplOut}
	require.NoError(t, tmpl.Run(context.Background()))
	assert.Contains(t, tmplOut.String(), "Template sets (")
	assert.NotContains(t, tmplOut.String(), "built-in")

	gen := NewGenerateCommand(root).WithDependencies(GenerateDependencies{
		ConfigLoader: &defaultConfigLoader{},
		Prompter:     &mockPrompter{},
		Output:       &mockOutput{},
	})
	require.NoError(t, gen.Run(context.Background(), GenerateOptions{Name: "footer"}))
	assert.Contains(t, readFile(t, root, "src/app/pages/footer-consumer/footer-consumer.component.html"), "<h1>Footer</h1>")
}

func TestEjectCommand_KeepsExistingFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(`{}`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tpl", "set"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tpl", "set", "a.txt"), []byte("mine"), 0644))

	templates := fstest.MapFS{
		"set/a.txt": {Data: []byte("builtin a")},
		"set/b.txt": {Data: []byte("builtin b")},
	}

	out := &mockOutput{}
	cmd := &EjectCommand{dir: root, loader: &defaultConfigLoader{}, output: out, templatesFS: templates}

	require.NoError(t, cmd.Run(context.Background(), EjectOptions{Dir: "tpl"}))
	assert.Contains(t, out.String(), "Ejected 1 template files to tpl (1 existing files kept)")
	assert.Contains(t, out.String(), `Set "templatesDir": "tpl" in showcase.json`)

	a, _ := os.ReadFile(filepath.Join(root, "tpl", "set", "a.txt"))
	assert.Equal(t, "mine", string(a))

	require.NoError(t, cmd.Run(context.Background(), EjectOptions{Dir: "tpl", Force: true}))
	a, _ = os.ReadFile(filepath.Join(root, "tpl", "set", "a.txt"))
	assert.Equal(t, "builtin a", string(a))
}

func TestEjectCommand_NothingToEject(t *testing.T) {
	cmd := &EjectCommand{dir: t.TempDir(), loader: &defaultConfigLoader{}, output: &mockOutput{}, templatesFS: fstest.MapFS{}}

	err := cmd.Run(context.Background(), EjectOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no templates to eject")
}
