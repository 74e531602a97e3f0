// Package esbuildplugin runs the emit phase of the template-html plugins
// inside an esbuild build.
package esbuildplugin

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/sunwei/templatehtml/bundle"
	"github.com/sunwei/templatehtml/plugin"
)

// Name is the esbuild plugin name.
const Name = "template-html"

// New creates an esbuild plugin that hands the output files to the
// GenerateBundle phase of plugins, in pre, normal, post order, and writes
// their changes back into the build result.
//
// The build must run with Write set to false; the caller writes the
// output files.
func New(ctx context.Context, plugins ...plugin.Plugin) api.Plugin {
	sorted := make([]plugin.Plugin, len(plugins))
	copy(sorted, plugins)
	plugin.Sort(sorted)

	return api.Plugin{
		Name: Name,
		Setup: func(build api.PluginBuild) {
			outdir := outDir(build.InitialOptions)

			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				if len(result.Errors) > 0 {
					return api.OnEndResult{}, nil
				}

				b, index := toBundle(result.OutputFiles, outdir)
				for _, p := range sorted {
					if err := p.GenerateBundle(ctx, b); err != nil {
						return api.OnEndResult{}, err
					}
				}

				for name, i := range index {
					if a := b.Get(name); a != nil {
						result.OutputFiles[i].Contents = a.Bytes()
					}
				}

				return api.OnEndResult{}, nil
			})
		},
	}
}

func outDir(opts *api.BuildOptions) string {
	dir := opts.Outdir
	if dir == "" && opts.Outfile != "" {
		dir = filepath.Dir(opts.Outfile)
	}
	if !filepath.IsAbs(dir) && opts.AbsWorkingDir != "" {
		dir = filepath.Join(opts.AbsWorkingDir, dir)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

func toBundle(files []api.OutputFile, outdir string) (*bundle.Bundle, map[string]int) {
	b := bundle.New()
	index := make(map[string]int, len(files))

	for i, f := range files {
		name, err := filepath.Rel(outdir, f.Path)
		if err != nil || strings.HasPrefix(name, "..") {
			name = filepath.Base(f.Path)
		}
		name = filepath.ToSlash(name)

		a := &bundle.Asset{FileName: name, Type: bundle.TypeAsset, Source: f.Contents}
		switch filepath.Ext(name) {
		case ".js", ".mjs", ".cjs":
			a.Type = bundle.TypeChunk
		case ".html", ".htm":
			a.Source = string(f.Contents)
		}

		b.Add(a)
		index[name] = i
	}

	return b, index
}
