package hostlib

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sunwei/templatehtml/devserver"
)

// Handler resolves the config, lets the plugins configure the dev server
// and returns its handler.
func (h *Host) Handler(ctx context.Context) (http.Handler, error) {
	srv, err := h.server(ctx)
	if err != nil {
		return nil, err
	}
	return srv.Handler(), nil
}

// Serve runs the dev server on addr until ctx is done.
func (h *Host) Serve(ctx context.Context, addr string) error {
	srv, err := h.server(ctx)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, addr)
}

func (h *Host) server(ctx context.Context) (*devserver.Server, error) {
	uc, err := h.resolve(ctx, CommandServe)
	if err != nil {
		return nil, err
	}

	srv := devserver.New(devserver.Config{
		Fs:        h.fs.WorkingDirReadOnly,
		Base:      uc.Base,
		Transform: h.transformIndexHTML,
		Logger:    h.logger,
	})

	for _, p := range h.plugins {
		if err := p.ConfigureServer(srv); err != nil {
			return nil, fmt.Errorf("%s: configure server: %w", p.Name(), err)
		}
	}

	return srv, nil
}
