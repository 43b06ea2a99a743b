package slot

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMemorySlot(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySlot()

	data, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read() failed, %v", err)
	}
	if data != nil {
		t.Errorf("Read() on fresh slot = %q, want nil", data)
	}

	if err = s.Write(ctx, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Write() failed, %v", err)
	}
	if data, err = s.Read(ctx); err != nil {
		t.Fatalf("Read() failed, %v", err)
	}
	if want := []byte(`[{"id":1}]`); !bytes.Equal(data, want) {
		t.Errorf("Read() = %q, want %q", data, want)
	}

	// mutating the returned blob must not leak into the slot
	data[0] = 'X'
	if data, err = s.Read(ctx); err != nil {
		t.Fatalf("Read() failed, %v", err)
	}
	if want := []byte(`[{"id":1}]`); !bytes.Equal(data, want) {
		t.Errorf("Read() after caller mutation = %q, want %q", data, want)
	}

	// an empty write is still a write
	if err = s.Write(ctx, []byte{}); err != nil {
		t.Fatalf("Write() failed, %v", err)
	}
	if data, err = s.Read(ctx); err != nil {
		t.Fatalf("Read() failed, %v", err)
	}
	if data == nil || len(data) != 0 {
		t.Errorf("Read() after empty write = %v, want empty non-nil blob", data)
	}
}

func TestFileSlot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileSlot(dir, "studyflow-courses")

	data, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read() failed, %v", err)
	}
	if data != nil {
		t.Errorf("Read() on fresh slot = %q, want nil", data)
	}

	if err = s.Write(ctx, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Write() failed, %v", err)
	}

	// a fresh instance sees the persisted blob
	if data, err = NewFileSlot(dir, "studyflow-courses").Read(ctx); err != nil {
		t.Fatalf("Read() failed, %v", err)
	}
	if want := []byte(`[{"id":1}]`); !bytes.Equal(data, want) {
		t.Errorf("Read() = %q, want %q", data, want)
	}

	if err = s.Write(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("Write() failed, %v", err)
	}
	if data, err = s.Read(ctx); err != nil {
		t.Fatalf("Read() failed, %v", err)
	}
	if want := []byte(`[]`); !bytes.Equal(data, want) {
		t.Errorf("Read() after overwrite = %q, want %q", data, want)
	}

	// no temp files left behind
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("Glob() failed, %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestFileSlot_createsDataDir(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	s := NewFileSlot(dir, "studyflow-courses")

	if err := s.Write(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("Write() failed, %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "studyflow-courses.json")); err != nil {
		t.Errorf("slot file not created: %v", err)
	}
}
