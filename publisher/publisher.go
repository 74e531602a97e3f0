// Package publisher writes built files to their destination.
package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/locker"
	"github.com/spf13/afero"
	"github.com/sunwei/templatehtml/bundle"
	"github.com/sunwei/templatehtml/helpers"
	"go.uber.org/atomic"
)

// Publisher publishes a result file.
type Publisher interface {
	Publish(ctx context.Context, d Descriptor) error
}

// Descriptor describes an item to publish.
type Descriptor struct {
	// The content to publish.
	Src io.Reader

	// Where to publish this content. This is a filesystem-relative path.
	TargetPath string
}

// NewDestinationPublisher creates a new DestinationPublisher.
func NewDestinationPublisher(fs afero.Fs) *DestinationPublisher {
	return &DestinationPublisher{fs: fs, locks: locker.NewLocker()}
}

// DestinationPublisher prepares and publishes an item to the defined
// destination, e.g. /dist.
type DestinationPublisher struct {
	fs    afero.Fs
	locks *locker.Locker

	published atomic.Uint64
}

// Publish writes the file to its destination, e.g. /dist. Writes to the
// same TargetPath are serialized.
func (p *DestinationPublisher) Publish(ctx context.Context, d Descriptor) error {
	if d.TargetPath == "" {
		return errors.New("publish: must provide a TargetPath")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.locks.Lock(d.TargetPath)
	defer p.locks.Unlock(d.TargetPath)

	f, err := helpers.OpenFileForWriting(p.fs, d.TargetPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = io.Copy(f, d.Src); err != nil {
		return fmt.Errorf("publish %q: %w", d.TargetPath, err)
	}

	p.published.Inc()

	return nil
}

// PublishBundle writes every asset in b.
func (p *DestinationPublisher) PublishBundle(ctx context.Context, b *bundle.Bundle) error {
	for _, a := range b.Assets() {
		if err := p.Publish(ctx, Descriptor{
			Src:        bytes.NewReader(a.Bytes()),
			TargetPath: a.FileName,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Published returns the number of files written so far.
func (p *DestinationPublisher) Published() uint64 {
	return p.published.Load()
}
