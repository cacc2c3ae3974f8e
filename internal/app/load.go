package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/uniformgrid/internal/config"
	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/docfile"
	"github.com/specialistvlad/uniformgrid/internal/fsutil"
	"github.com/specialistvlad/uniformgrid/internal/hcl"
)

// multiLoader dispatches every definition file to the loader registered for
// its extension, so a directory may mix formats.
type multiLoader struct {
	exts  []string
	byExt map[string]config.Loader
}

var _ config.Loader = (*multiLoader)(nil)

func newMultiLoader(loaders ...config.Loader) *multiLoader {
	m := &multiLoader{byExt: make(map[string]config.Loader)}
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			if _, dup := m.byExt[ext]; dup {
				panic(fmt.Sprintf("extension '%s' is claimed by two loaders", ext))
			}
			m.byExt[ext] = l
			m.exts = append(m.exts, ext)
		}
	}
	return m
}

// defaultLoader reads HCL, YAML and TOML definitions.
func defaultLoader() *multiLoader {
	return newMultiLoader(hcl.NewLoader(), docfile.NewYAMLLoader(), docfile.NewTOMLLoader())
}

func (m *multiLoader) Extensions() []string { return m.exts }

// Load reads all definition files in lexical path order, whatever their
// format, and merges them into one model.
func (m *multiLoader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(paths, m.exts...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no definition files (%s) found in %s", strings.Join(m.exts, ", "), strings.Join(paths, ", "))
	}
	logger.Debug("Discovered definition files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		loader := m.byExt[strings.ToLower(filepath.Ext(file))]
		part, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, err
		}
	}
	return model, nil
}

// handles reports whether a changed file is a definition file.
func (m *multiLoader) handles(path string) bool {
	_, ok := m.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}
