// Package hostlib drives the plugin lifecycle the way a bundler would:
// config, resolve, then either serve or build.
package hostlib

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/sunwei/templatehtml/common/loggers"
	"github.com/sunwei/templatehtml/helpers"
	"github.com/sunwei/templatehtml/plugin"
	"github.com/sunwei/templatehtml/resources/page"
	"github.com/sunwei/templatehtml/sitefs"
	"github.com/sunwei/templatehtml/tpl"
	"github.com/sunwei/templatehtml/transform"
	"github.com/sunwei/templatehtml/transform/tagsinject"
)

// Commands.
const (
	CommandBuild = "build"
	CommandServe = "serve"
)

// Defaults.
const (
	DefaultOutDir    = "dist"
	DefaultBuildMode = "production"
	DefaultServeMode = "development"
)

// HostConfig configures a Host.
type HostConfig struct {
	// Fs is the file system the project lives in. Defaults to the OS file system.
	Fs afero.Fs

	// Root is the project root. Defaults to the working directory.
	Root string

	// Mode defaults to production for Build and development for Serve.
	Mode string

	// Base is the public base path. Defaults to "/".
	Base string

	// OutDir is where Build writes, relative to Root. Defaults to dist.
	OutDir string

	// Define values are available to every template.
	Define map[string]any

	// Input overrides the build inputs contributed by plugins.
	Input page.Input

	// EnvPrefix filters the environment variables exposed to templates.
	EnvPrefix []string

	Logger loggers.Logger
}

// Host runs plugins.
type Host struct {
	cfg     HostConfig
	fs      *sitefs.Fs
	plugins []plugin.Plugin
	logger  loggers.Logger
}

// New creates a new Host. The plugins are run pre, normal, post, and in
// the given order within each group.
func New(cfg HostConfig, plugins ...plugin.Plugin) (*Host, error) {
	if cfg.Fs == nil {
		cfg.Fs = sitefs.Os
	}
	if cfg.Logger == nil {
		cfg.Logger = loggers.NewDefault()
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.Root = root
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	cfg.Base = helpers.NormalizeBase(cfg.Base)

	sorted := make([]plugin.Plugin, len(plugins))
	copy(sorted, plugins)
	plugin.Sort(sorted)

	return &Host{
		cfg:     cfg,
		plugins: sorted,
		logger:  cfg.Logger,
	}, nil
}

// Plugins returns the plugins in run order.
func (h *Host) Plugins() []plugin.Plugin {
	return h.plugins
}

// resolve runs the Config and ConfigResolved phases and returns the
// final user config.
func (h *Host) resolve(ctx context.Context, command string) (plugin.UserConfig, error) {
	mode := h.cfg.Mode
	if mode == "" {
		mode = DefaultBuildMode
		if command == CommandServe {
			mode = DefaultServeMode
		}
	}

	fs, err := sitefs.NewFrom(h.cfg.Fs, h.cfg.Root, h.cfg.OutDir, h.logger)
	if err != nil {
		return plugin.UserConfig{}, err
	}
	h.fs = fs

	uc := plugin.UserConfig{
		Root:   h.cfg.Root,
		Base:   h.cfg.Base,
		Mode:   mode,
		Define: h.cfg.Define,
		Input:  h.cfg.Input,
	}
	for _, p := range h.plugins {
		if uc, err = p.Config(ctx, uc); err != nil {
			return uc, fmt.Errorf("%s: config: %w", p.Name(), err)
		}
	}

	rc := plugin.ResolvedConfig{
		Fs:          h.cfg.Fs,
		Root:        uc.Root,
		Base:        uc.Base,
		Mode:        uc.Mode,
		Command:     command,
		Define:      uc.Define,
		EnvPrefixes: h.cfg.EnvPrefix,
		Logger:      h.logger,
	}
	for _, p := range h.plugins {
		if err := p.ConfigResolved(ctx, rc); err != nil {
			return uc, fmt.Errorf("%s: config resolved: %w", p.Name(), err)
		}
	}

	h.logger.Infof("Resolved %s in %s mode, base %s", h.cfg.Root, uc.Mode, uc.Base)

	return uc, nil
}

// transformIndexHTML runs the TransformIndexHTML phase of every plugin,
// then the post chain, which injects the collected tags.
func (h *Host) transformIndexHTML(ctx context.Context, filename, originalURL, html string) (string, error) {
	tc := plugin.TransformContext{
		Filename:    filepath.Join(h.cfg.Root, filepath.FromSlash(filename)),
		OriginalURL: originalURL,
	}

	var tags []tpl.Tag
	for _, p := range h.plugins {
		res, err := p.TransformIndexHTML(ctx, html, tc)
		if err != nil {
			return "", fmt.Errorf("%s: %w", p.Name(), err)
		}
		html = res.HTML
		tags = append(tags, res.Tags...)
	}

	post := transform.NewEmpty()
	if len(tags) > 0 {
		post = post.Add(tagsinject.New(tags))
	}
	html, err := post.ApplyString(html)
	if err != nil {
		return "", fmt.Errorf("%s: %w", filename, err)
	}
	return html, nil
}
