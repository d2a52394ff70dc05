// Package storagetest holds afero file systems that fail on demand.
package storagetest

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/afero"
)

var ErrDiskFull = errors.New("disk full")

// FailingFs fails Create on names containing CreateMatch and Rename onto
// names containing RenameMatch. An empty match never fails.
type FailingFs struct {
	afero.Fs
	CreateMatch string
	RenameMatch string
}

func (f FailingFs) Create(name string) (afero.File, error) {
	if f.CreateMatch != "" && strings.Contains(name, f.CreateMatch) {
		return nil, &os.PathError{Op: "create", Path: name, Err: ErrDiskFull}
	}
	return f.Fs.Create(name)
}

func (f FailingFs) Rename(oldname string, newname string) error {
	if f.RenameMatch != "" && strings.Contains(newname, f.RenameMatch) {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: ErrDiskFull}
	}
	return f.Fs.Rename(oldname, newname)
}
