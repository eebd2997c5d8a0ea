package persistence

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/pkgdb/pkg/constants"
	"github.com/agentstation/pkgdb/pkg/errors"
	"github.com/agentstation/pkgdb/pkg/packages"
	"github.com/agentstation/pkgdb/pkg/save"
)

// Load reads the database at path. A missing or unreadable file is a
// NotFoundError for resource "database"; content that does not decode to
// the document shape is a ParseError.
func Load(path string, opts ...save.Option) (*packages.Packages, error) {
	options := save.Defaults()
	options.Apply(opts...)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.NotFoundError{Resource: "database", ID: path, Err: err}
	}

	c := codecFor(options.Resolve(path))
	tree, err := c.Decode(data)
	if err != nil {
		return nil, errors.WrapParse(c.Name(), path, err)
	}

	return fromTree(tree, c.Name(), path)
}

// Save encodes the whole store and replaces the file at path. With the
// default options the new content is staged in a temp file next to path
// and renamed over it, so on failure the previous file is untouched.
func Save(store *packages.Packages, path string, opts ...save.Option) error {
	options := save.Defaults()
	options.Apply(opts...)

	c := codecFor(options.Resolve(path))
	data, err := c.Encode(newDocument(store))
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}

	if !options.Atomic() {
		return writeInPlace(path, data, options)
	}
	return writeAtomic(path, data, options)
}

// Exists reports whether a database file is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, errors.WrapIO("read", path, err)
	}
}

func writeAtomic(path string, data []byte, options *save.Options) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, constants.TempFilePattern)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	fail := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO(op, path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if options.Sync() {
		if err := tmp.Sync(); err != nil {
			return fail("sync", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fail("write", err)
	}
	if err := os.Chmod(tmpPath, options.FileMode()); err != nil {
		return fail("chmod", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fail("rename", err)
	}

	if options.Sync() {
		// The rename is already visible; a directory that cannot be
		// fsynced (some filesystems refuse) does not undo it.
		syncDir(dir)
	}
	return nil
}

func writeInPlace(path string, data []byte, options *save.Options) error {
	if err := os.WriteFile(path, data, options.FileMode()); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if options.Sync() {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return errors.WrapIO("sync", path, err)
		}
		defer f.Close()
		if err := f.Sync(); err != nil {
			return errors.WrapIO("sync", path, err)
		}
	}
	return nil
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
