package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// fileSink appends to a log file, opening it on first write and reopening it
// when the file was removed or rotated away underneath it.
type fileSink struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	opened os.FileInfo
}

var _ io.WriteCloser = (*fileSink)(nil)

func newFileSink(path string) *fileSink {
	return &fileSink{path: path}
}

// Write implements the io.Writer interface.
func (s *fileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	return s.file.Write(p)
}

// Close implements the io.Closer interface.
func (s *fileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.opened = nil
	return err
}

func (s *fileSink) ensureOpen() error {
	if s.file != nil {
		current, err := os.Stat(s.path)
		if err == nil && os.SameFile(current, s.opened) {
			return nil
		}
		s.file.Close()
		s.file = nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	s.file = file
	s.opened = info
	return nil
}
