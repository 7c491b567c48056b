// Package view integrates the relationship Synchronizer with html/template.
//
// Templates read relationship properties through the Synchronizer instead of
// accessing struct fields directly:
//
//	{{ range rel .Book "authors" }}{{ .Name }}{{ end }}
//	{{ if related .Book "authors" .Author }}...{{ end }}
package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/Masterminds/sprig/v3"

	"github.com/go-arrower/relationship"
)

var ErrLoadFailed = errors.New("loading templates failed")

// FuncMap returns the sprig functions extended by the relationship helpers:
//
//	rel     reads a property, collections are returned as a slice of their members
//	related reports if an item is a member of a collection property
//	isset   always false, as existence probes have to go through the Synchronizer
func FuncMap(syncer *relationship.Synchronizer) template.FuncMap {
	funcs := sprig.FuncMap()

	funcs["rel"] = func(entity any, property string) (any, error) {
		v, err := syncer.Do(context.Background(), entity, relationship.Access, property, nil)
		if err != nil {
			return nil, err
		}

		if c, ok := v.(relationship.Collection); ok {
			return c.Values(), nil
		}

		return v, nil
	}

	funcs["related"] = func(entity any, property string, item any) (bool, error) {
		return syncer.Has(context.Background(), entity, property, item)
	}

	funcs["isset"] = syncer.Isset

	return funcs
}

// New returns an empty template with FuncMap registered.
func New(syncer *relationship.Synchronizer, name string) *template.Template {
	return template.New(name).Funcs(FuncMap(syncer))
}

// ParseFS parses all files of fsys matching the glob pattern, e.g. "views/*.html".
// Each template is named after its file name without extension.
func ParseFS(syncer *relationship.Synchronizer, fsys fs.FS, pattern string) (*template.Template, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: could not get templates from fs: %v", ErrLoadFailed, err) //nolint:errorlint // prevent err in api
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no templates match %s", ErrLoadFailed, pattern)
	}

	templates := New(syncer, "<empty>")

	for _, f := range files {
		content, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("%w: could not read template file: %s: %v", ErrLoadFailed, f, err) //nolint:errorlint // prevent err in api
		}

		_, err = templates.New(templateName(f)).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse template: %s: %v", ErrLoadFailed, f, err) //nolint:errorlint // prevent err in api
		}
	}

	return templates, nil
}

func templateName(file string) string {
	name := path.Base(file)

	return strings.TrimSuffix(name, path.Ext(name))
}
