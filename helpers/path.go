package helpers

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultTemplate is the template used when none is configured.
const DefaultTemplate = "index.html"

// TemplateDir returns the part of a template path before the last slash,
// e.g. "admin" for "admin/index.html" and "" for "index.html".
func TemplateDir(template string) string {
	i := strings.LastIndex(template, "/")
	if i < 0 {
		return ""
	}
	return template[:i]
}

// TemplateFilename returns the part of a template path after the last slash,
// e.g. "index.html" for "admin/index.html".
func TemplateFilename(template string) string {
	return template[strings.LastIndex(template, "/")+1:]
}

// TemplateURL returns the URL a template is served from below base.
// An empty template means DefaultTemplate.
func TemplateURL(template, base string) string {
	if template == "" {
		template = DefaultTemplate
	}
	return base + template
}

// NormalizeBase makes sure base starts and ends with a slash.
// An empty base is "/".
func NormalizeBase(base string) string {
	if base == "" || base == "./" || base == "." {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return AddTrailingSlash(base)
}

// AddTrailingSlash adds a trailing Unix styled slash (/) if not already
// there.
func AddTrailingSlash(p string) string {
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// AddLeadingSlash adds a leading Unix styled slash (/) if not already
// there.
func AddLeadingSlash(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// TrimBase strips base from a request path and returns the
// root-relative path, e.g. "admin/index.html" for "/app/admin/index.html"
// with base "/app/".
func TrimBase(requestPath, base string) string {
	base = NormalizeBase(base)
	p := path.Clean(AddLeadingSlash(requestPath))
	if strings.HasPrefix(p+"/", base) {
		p = p[len(base)-1:]
	}
	return strings.TrimPrefix(p, "/")
}

// ToSlashTrimLeading is just a filepath.ToSlash with an added / prefix trimmer.
func ToSlashTrimLeading(s string) string {
	return strings.TrimPrefix(filepath.ToSlash(s), "/")
}

// OpenFileForWriting opens or creates the given file. If the target directory
// does not exist, it gets created.
func OpenFileForWriting(fs afero.Fs, filename string) (afero.File, error) {
	filename = filepath.Clean(filename)
	// Create will truncate if file already exists.
	// os.Create will create any new files with mode 0666 (before umask).
	f, err := fs.Create(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err = fs.MkdirAll(filepath.Dir(filename), 0777); err != nil { //  before umask
			return nil, err
		}
		f, err = fs.Create(filename)
	}

	return f, err
}

// DirExists checks if a path exists and is a directory.
func DirExists(path string, fs afero.Fs) (bool, error) {
	return afero.DirExists(fs, path)
}
