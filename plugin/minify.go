package plugin

import (
	"context"

	"github.com/sunwei/templatehtml/bundle"
	"github.com/sunwei/templatehtml/minifiers"
)

// MinifyPlugin minifies the emitted HTML assets after every other plugin
// is done with them.
type MinifyPlugin struct {
	Base
	client minifiers.Client
}

func (p *MinifyPlugin) Name() string { return "minify-template-html" }

func (p *MinifyPlugin) Enforce() Enforce { return EnforcePost }

func (p *MinifyPlugin) GenerateBundle(ctx context.Context, b *bundle.Bundle) error {
	return bundle.MinifyAll(ctx, b, p.client)
}
