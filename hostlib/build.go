package hostlib

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/afero"
	"github.com/sunwei/templatehtml/bundle"
	"github.com/sunwei/templatehtml/helpers"
	"github.com/sunwei/templatehtml/publisher"
	"golang.org/x/sync/errgroup"
)

// BuildResult is what Build produced.
type BuildResult struct {
	Bundle    *bundle.Bundle
	Published uint64
}

// Build renders every build input, runs the GenerateBundle phase and
// writes the bundle to the out dir.
func (h *Host) Build(ctx context.Context) (BuildResult, error) {
	uc, err := h.resolve(ctx, CommandBuild)
	if err != nil {
		return BuildResult{}, err
	}

	entries := uc.Input.Entries()
	if len(entries) == 0 {
		return BuildResult{}, errors.New("build: no input")
	}

	b := bundle.New()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, e := range entries {
		template := helpers.ToSlashTrimLeading(e.Template)
		g.Go(func() error {
			src, err := afero.ReadFile(h.fs.WorkingDirReadOnly, template)
			if err != nil {
				return fmt.Errorf("build input %q: %w", template, err)
			}
			html, err := h.transformIndexHTML(gctx, template, "", string(src))
			if err != nil {
				return err
			}
			b.Add(&bundle.Asset{FileName: template, Type: bundle.TypeAsset, Source: html})
			h.logger.Debugf("Rendered %s", template)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BuildResult{}, err
	}

	for _, p := range h.plugins {
		if err := p.GenerateBundle(ctx, b); err != nil {
			return BuildResult{}, fmt.Errorf("%s: generate bundle: %w", p.Name(), err)
		}
	}

	pub := publisher.NewDestinationPublisher(h.fs.PublishDir)
	if err := pub.PublishBundle(ctx, b); err != nil {
		return BuildResult{}, err
	}

	h.logger.Infof("Built %d files in %s", pub.Published(), h.cfg.OutDir)

	return BuildResult{Bundle: b, Published: pub.Published()}, nil
}
