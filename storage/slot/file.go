package slot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileSlot persists the blob as a file named after the slot. Writes go
// through a temp file and a rename so that readers never observe a
// half-written blob.
type FileSlot struct {
	path string
}

var _ Slot = (*FileSlot)(nil)

func NewFileSlot(dir, name string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, name+".json")}
}

func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading slot file %s", s.path)
	}
	return data, nil
}

func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating slot dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp slot file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // no-op once renamed

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing temp slot file %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing temp slot file %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "replacing slot file %s", s.path)
	}
	return nil
}
