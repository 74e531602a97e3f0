// Package sitefs provides the file systems used by the build and the dev
// server.
package sitefs

import (
	"os"

	"github.com/spf13/afero"
	"github.com/sunwei/templatehtml/common/loggers"
)

// Os points to the (real) Os filesystem.
var Os = &afero.OsFs{}

// Fs holds the core filesystems.
type Fs struct {
	// Source is the project's source file system, templates and env files
	// are read from here.
	// Note that this will always be a "plain" Afero filesystem:
	// * afero.OsFs when running in production
	// * afero.MemMapFs for many of the tests.
	Source afero.Fs

	// PublishDir is where the build writes its output.
	// It's mounted inside outDir (default dist).
	PublishDir afero.Fs

	// WorkingDirReadOnly is a read-only file system
	// restricted to the project root.
	WorkingDirReadOnly afero.Fs
}

// NewDefault creates a new Fs with the OS file system
// as source and destination file systems.
func NewDefault(root, outDir string, logger loggers.Logger) (*Fs, error) {
	return NewFrom(Os, root, outDir, logger)
}

// NewFrom creates a new Fs based on the provided Afero Fs
// as source and destination file systems.
// Useful for testing.
func NewFrom(fs afero.Fs, root, outDir string, logger loggers.Logger) (*Fs, error) {
	return newFs(fs, fs, root, outDir, logger)
}

func newFs(source, destination afero.Fs, root, outDir string, logger loggers.Logger) (*Fs, error) {
	absPublishDir := AbsPathify(root, outDir)

	// Make sure we always have the publish folder ready to use.
	if err := destination.MkdirAll(absPublishDir, 0777); err != nil && !os.IsExist(err) {
		return nil, err
	}
	if logger != nil {
		logger.Debugf("publish dir %s", absPublishDir)
	}

	return &Fs{
		Source:             source,
		PublishDir:         afero.NewBasePathFs(destination, absPublishDir),
		WorkingDirReadOnly: getWorkingDirFsReadOnly(source, root),
	}, nil
}

func getWorkingDirFsReadOnly(base afero.Fs, workingDir string) afero.Fs {
	if workingDir == "" {
		return afero.NewReadOnlyFs(base)
	}
	return afero.NewBasePathFs(afero.NewReadOnlyFs(base), workingDir)
}
