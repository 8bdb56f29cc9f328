package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/htmlindexer/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileReturnsFreshDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), DefaultFile)

	a, err := Load(missing)
	require.NoError(t, err)
	b, err := Load(missing)
	require.NoError(t, err)

	assert.Empty(t, a.NoOverwrite)
	assert.Empty(t, a.Ignore)
	assert.Empty(t, a.Source)
	assert.False(t, a.IsExcluded(".git"))
	assert.False(t, a.IsProtected("index.html"))

	a.Ignore = append(a.Ignore, "mutated")
	assert.Empty(t, b.Ignore, "defaults must not be shared between loads")
}

func TestLoadJSONArrays(t *testing.T) {
	path := writeConfig(t, `{
	"noOverwrite": ["^docs/index\\.html$"],
	"ignore": ["\\.git", "NODE_MODULES"]
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, PatternList{`^docs/index\.html$`}, cfg.NoOverwrite)

	assert.True(t, cfg.IsProtected("docs/index.html"))
	assert.True(t, cfg.IsProtected("./docs//index.html"), "paths are normalized before matching")
	assert.False(t, cfg.IsProtected("other/docs/index.html"))

	assert.True(t, cfg.IsExcluded(".git"))
	assert.True(t, cfg.IsExcluded("sub/.git/objects"), "patterns search, they do not anchor")
	assert.True(t, cfg.IsExcluded("web/node_modules"), "patterns are case-insensitive")
	assert.False(t, cfg.IsExcluded("src/main.go"))
}

func TestLoadSingleStringPatterns(t *testing.T) {
	path := writeConfig(t, `{"noOverwrite": "index\\.html$", "ignore": "^tmp"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, PatternList{`index\.html$`}, cfg.NoOverwrite)
	assert.Equal(t, PatternList{`^tmp`}, cfg.Ignore)
	assert.True(t, cfg.IsExcluded("tmp/cache"))
}

func TestLoadNullAndMissingFields(t *testing.T) {
	path := writeConfig(t, `{"noOverwrite": null}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.IsProtected("index.html"))
	assert.False(t, cfg.IsExcluded("anything"))
	assert.False(t, cfg.IsPruned("anything"))
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
noOverwrite: ^README
ignore:
  - \.git
  - ^build$
prune:
  - ^vendor$
readme: true
template: views/index.html.tmpl
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, PatternList{`^README`}, cfg.NoOverwrite)
	assert.Equal(t, PatternList{`\.git`, `^build$`}, cfg.Ignore)
	assert.True(t, cfg.IsPruned("vendor"))
	assert.False(t, cfg.IsPruned("src/vendor"))
	assert.True(t, cfg.Readme)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "views", "index.html.tmpl"), cfg.Template)
}

func TestLoadMalformedIsFatal(t *testing.T) {
	path := writeConfig(t, `{"ignore": [`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.True(t, classified.IsFatal())
	src, _ := classified.Context().GetString("config")
	assert.Equal(t, path, src)
}

func TestLoadWrongShapeIsFatal(t *testing.T) {
	path := writeConfig(t, `{"ignore": {"a": 1}}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoadInvalidPatternIsFatal(t *testing.T) {
	path := writeConfig(t, `{"ignore": ["("]}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))
	assert.Contains(t, err.Error(), `ignore "("`)
}

func TestLoadUnreadableIsFatal(t *testing.T) {
	// A directory cannot be read as a file; the error is not "does not exist".
	dir := t.TempDir()

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestCompileAndMatch(t *testing.T) {
	m, err := Compile("ignore", []string{`^a/b$`, `\.tmp$`})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Match("a/./b"))
	assert.True(t, m.Match("x/Y.TMP"))
	assert.False(t, m.Match("a/b/c"))

	var nilMatcher *Matcher
	assert.False(t, nilMatcher.Match("anything"))
	assert.Equal(t, 0, nilMatcher.Len())
}

func TestInitWritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsExcluded(".git"))
	assert.True(t, cfg.IsExcluded("a/.git/HEAD"))
	assert.False(t, cfg.IsExcluded("a/.github"))
	assert.True(t, cfg.IsProtected("docs/index.html"))
	assert.True(t, cfg.IsPruned("vendor"))

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	require.NoError(t, Init(path, true))
}
