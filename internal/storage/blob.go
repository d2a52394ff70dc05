// Package storage is the location addressed blob store for product media.
// Paths are slash separated and relative to the store root.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

type Blob struct {
	fs afero.Fs
}

func NewBlob(fs afero.Fs) *Blob {
	return &Blob{fs: fs}
}

func NewOsBlob(root string) (*Blob, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed creating storage root=%s with error=%w", root, err)
	}
	return NewBlob(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

func (b *Blob) Fs() afero.Fs {
	return b.fs
}

// Stage writes the content produced by write next to p under a unique
// temporary name and returns that name. The caller either promotes it with
// Promote or discards it with Remove.
func (b *Blob) Stage(p string, write func(io.Writer) error) (string, error) {
	if err := b.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("failed creating directory of path=%s with error=%w", p, err)
	}

	staged := fmt.Sprintf("%s.%s.tmp", p, uuid.NewString())
	file, err := b.fs.Create(staged)
	if err != nil {
		return "", fmt.Errorf("failed creating staged file=%s with error=%w", staged, err)
	}

	err = write(file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		err = fmt.Errorf("failed writing staged file=%s with error=%w", staged, err)
		if removeErr := b.fs.Remove(staged); removeErr != nil {
			err = errors.Join(err, removeErr)
		}
		return "", err
	}

	return staged, nil
}

// Promote atomically moves a staged file onto p, overwriting p.
func (b *Blob) Promote(staged string, p string) error {
	if err := b.fs.Rename(staged, p); err != nil {
		return fmt.Errorf("failed promoting staged file=%s to path=%s with error=%w", staged, p, err)
	}
	return nil
}

// Put stages and promotes r onto p in one step.
func (b *Blob) Put(p string, r io.Reader) error {
	staged, err := b.Stage(p, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
	if err != nil {
		return err
	}
	if err := b.Promote(staged, p); err != nil {
		return errors.Join(err, b.Remove(staged))
	}
	return nil
}

func (b *Blob) Open(p string) (afero.File, error) {
	return b.fs.Open(p)
}

// Remove deletes p. A missing file is not an error.
func (b *Blob) Remove(p string) error {
	err := b.fs.Remove(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed removing path=%s with error=%w", p, err)
	}
	return nil
}

func (b *Blob) Exists(p string) (bool, error) {
	return afero.Exists(b.fs, p)
}

// Prune removes dir when it holds no entries. A missing or non-empty dir is
// left alone.
func (b *Blob) Prune(dir string) error {
	isDir, err := afero.DirExists(b.fs, dir)
	if err != nil {
		return fmt.Errorf("failed checking directory=%s with error=%w", dir, err)
	}
	if !isDir {
		return nil
	}
	empty, err := afero.IsEmpty(b.fs, dir)
	if err != nil {
		return fmt.Errorf("failed reading directory=%s with error=%w", dir, err)
	}
	if !empty {
		return nil
	}
	return b.Remove(dir)
}
