// Package archive reads chat exports from their two container forms: a
// loose directory of chat text plus media files, or a zip file with the
// same layout.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChatFileName is the conventional name of the chat text inside an export.
const ChatFileName = "_chat.txt"

// ErrUnknownFormat is returned when a path is neither a directory, a chat
// text file, nor a zip archive.
var ErrUnknownFormat = errors.New("unknown archive format")

// Provider reads the two kinds of content an export holds.
type Provider interface {
	// Chat returns the raw chat text.
	Chat() (string, error)
	// Media returns the bytes of a named attachment, failing when the
	// archive holds no such entry.
	Media(name string) ([]byte, error)
}

// Dir reads an export that was extracted into a directory.
type Dir struct {
	dir      string
	chatFile string
}

// NewDir opens a directory export. chatFile overrides the default
// _chat.txt inside the directory; empty means the default.
func NewDir(dir, chatFile string) *Dir {
	if chatFile == "" {
		chatFile = filepath.Join(dir, ChatFileName)
	}
	return &Dir{dir: dir, chatFile: chatFile}
}

func (d *Dir) Chat() (string, error) {
	data, err := os.ReadFile(d.chatFile)
	if err != nil {
		return "", fmt.Errorf("read chat text: %w", err)
	}
	return string(data), nil
}

func (d *Dir) Media(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read media %q: %w", name, err)
	}
	return data, nil
}

// Zip reads an export straight out of its zip container.
type Zip struct {
	rc *zip.ReadCloser
}

// OpenZip opens a zipped export.
func OpenZip(path string) (*Zip, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", path, err)
	}
	return &Zip{rc: rc}, nil
}

func (z *Zip) Chat() (string, error) {
	data, err := z.read(ChatFileName)
	if err != nil {
		return "", fmt.Errorf("read chat text: %w", err)
	}
	return string(data), nil
}

func (z *Zip) Media(name string) ([]byte, error) {
	data, err := z.read(name)
	if err != nil {
		return nil, fmt.Errorf("read media %q: %w", name, err)
	}
	return data, nil
}

// Close releases the underlying zip file.
func (z *Zip) Close() error {
	return z.rc.Close()
}

func (z *Zip) read(name string) ([]byte, error) {
	f, err := z.rc.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Open inspects path and returns the matching provider plus the chat name
// derived from it: the base name of the directory, or of the zip with its
// suffix trimmed. A .txt path is used as the chat file of its parent
// directory. Anything else is refused with ErrUnknownFormat.
func Open(path string) (Provider, string, error) {
	path = filepath.Clean(path)

	if strings.HasSuffix(path, ".txt") {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("stat %s: %w", path, err)
		}
		dir := filepath.Dir(path)
		return NewDir(dir, path), filepath.Base(dir), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		return NewDir(path, ""), filepath.Base(path), nil
	case strings.HasSuffix(path, ".zip"):
		z, err := OpenZip(path)
		if err != nil {
			return nil, "", err
		}
		return z, strings.TrimSuffix(filepath.Base(path), ".zip"), nil
	default:
		return nil, "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}
