// Package modelfile locates the language-ID model on disk, downloading it
// when missing, and hands out a path the ONNX runtime can open.
package modelfile

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrNotFound is returned when the model file is missing and no download
	// URL is configured.
	ErrNotFound = errors.New("modelfile: model not found")

	// ErrDownload is returned when fetching the model fails.
	ErrDownload = errors.New("modelfile: download failed")

	// ErrChecksumMismatch is logged when the file's MD5 differs from the
	// expected one. Open still succeeds.
	ErrChecksumMismatch = errors.New("modelfile: checksum mismatch")
)

// plainPath matches paths every runtime can open as given.
var plainPath = regexp.MustCompile(`^[A-Za-z0-9_/\\:.]*$`)

// Source describes where a model lives and how to obtain it.
type Source struct {
	// Path is the local model file.
	Path string
	// DownloadURL is fetched into Path when Path does not exist.
	DownloadURL string
	// Proxy is an optional HTTP proxy URL for the download.
	Proxy string
	// MD5 is the expected hex digest. Empty skips verification.
	MD5 string
	// TempCopy makes Open hand out a plain ASCII path when Path contains
	// other characters: a relative path when the file lives under the working
	// directory, otherwise a temporary copy.
	TempCopy bool
}

// File is an opened model location.
type File struct {
	path string
	temp string
}

// Path returns the path to pass to the model runtime.
func (f *File) Path() string {
	return f.path
}

// Close removes the temporary copy, if one was made. It is safe to call more
// than once.
func (f *File) Close() error {
	if f.temp == "" {
		return nil
	}
	err := os.Remove(f.temp)
	f.temp = ""
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing temp copy: %w", err)
	}
	return nil
}

// Open resolves src to a usable model file.
func Open(ctx context.Context, src Source, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if src.Path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}

	if _, err := os.Stat(src.Path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("model file: %w", err)
		}
		if src.DownloadURL == "" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, src.Path)
		}
		logger.Info("downloading model", "url", src.DownloadURL, "path", src.Path)
		if err := download(ctx, src); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDownload, err)
		}
	}

	if src.MD5 != "" {
		sum, err := fileMD5(src.Path)
		if err != nil {
			return nil, fmt.Errorf("hashing model: %w", err)
		}
		if !strings.EqualFold(sum, src.MD5) {
			logger.Warn("model checksum differs, loading anyway",
				"error", ErrChecksumMismatch,
				"path", src.Path,
				"want", src.MD5,
				"got", sum,
			)
		}
	}

	if !src.TempCopy || plainPath.MatchString(src.Path) {
		return &File{path: src.Path}, nil
	}
	return plainCopy(src.Path, logger)
}

// plainCopy returns a plain-character path for path: relative to the working
// directory when possible, else a temp copy.
func plainCopy(path string, logger *slog.Logger) (*File, error) {
	if wd, err := os.Getwd(); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			rel, err := filepath.Rel(wd, abs)
			if err == nil && !strings.HasPrefix(rel, "..") && plainPath.MatchString(rel) {
				logger.Debug("using relative model path", "path", rel)
				return &File{path: rel}, nil
			}
		}
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.CreateTemp("", "langseg-model-*"+filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("creating temp copy: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return nil, fmt.Errorf("copying model: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return nil, fmt.Errorf("copying model: %w", err)
	}

	logger.Debug("using temp model copy", "path", out.Name())
	return &File{path: out.Name(), temp: out.Name()}, nil
}

// download fetches src.DownloadURL into src.Path through a temp file in the
// same directory, renamed into place once complete.
func download(ctx context.Context, src Source) error {
	client := http.DefaultClient
	if src.Proxy != "" {
		proxy, err := url.Parse(src.Proxy)
		if err != nil {
			return fmt.Errorf("parsing proxy: %w", err)
		}
		client = &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(proxy)}}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.DownloadURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	dir := filepath.Dir(src.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	return os.Rename(tmpName, src.Path)
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
