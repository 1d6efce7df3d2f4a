package demo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrNoDecoder is returned by Open when no decoder handles the file extension.
var ErrNoDecoder = errors.New("no decoder registered")

// ProgressFunc receives decode progress in frames.
type ProgressFunc func(done, total int)

// Decoder turns a demo byte stream into a File. Implementations fill the
// frame sequences, header and server info; Open derives the rest.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader, progress ProgressFunc) (*File, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, r io.Reader, progress ProgressFunc) (*File, error)

func (fn DecoderFunc) Decode(ctx context.Context, r io.Reader, progress ProgressFunc) (*File, error) {
	return fn(ctx, r, progress)
}

var registry = struct {
	mu    sync.RWMutex
	byExt map[string]Decoder
}{byExt: map[string]Decoder{}}

// Register installs a decoder for a file extension such as ".dem".
func Register(ext string, d Decoder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.byExt[normalizeExt(ext)] = d
}

// Extensions lists the registered extensions in sorted order.
func Extensions() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	exts := make([]string, 0, len(registry.byExt))
	for ext := range registry.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func decoderFor(path string) (Decoder, error) {
	ext := normalizeExt(filepath.Ext(path))
	registry.mu.RLock()
	d, ok := registry.byExt[ext]
	registry.mu.RUnlock()
	if !ok || d == nil {
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("extension %s: %w", ext, ErrNoDecoder)
	}
	return d, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Open decodes the file at path and builds the cross-reference indexes used
// to jump between frames, user messages and game events.
func Open(ctx context.Context, path string, progress ProgressFunc) (*File, error) {
	d, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if progress == nil {
		progress = func(int, int) {}
	}
	file, err := d.Decode(ctx, bufio.NewReader(f), progress)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if file == nil {
		return nil, fmt.Errorf("decode %s: decoder returned no data", filepath.Base(path))
	}
	file.Path = path
	file.Size = info.Size()
	if err := file.Index(ctx); err != nil {
		return nil, err
	}
	return file, nil
}

func init() {
	Register(".json", DecoderFunc(decodeJSON))
}
