package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/docsync/docsync/oaserrors"
)

// Load reads the raw bytes of src from disk or the network. Failures are
// reported as *oaserrors.LoadError.
func Load(ctx context.Context, src SourceDescriptor, opts ...Option) ([]byte, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.load(ctx, src.Locator, src.OriginKind == OriginURL || IsURL(src.Locator))
}

func (c *config) load(ctx context.Context, locator string, remote bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &oaserrors.LoadError{Locator: locator, Cause: err}
	}
	if remote {
		c.logger.Debug("fetching definition", "url", locator)
		data, _, err := c.fetcher.Fetch(ctx, locator)
		if err != nil {
			return nil, &oaserrors.LoadError{Locator: locator, Message: "unreachable URL", Cause: err}
		}
		if int64(len(data)) > c.maxFileSize {
			return nil, tooLarge(locator, int64(len(data)), c.maxFileSize)
		}
		return data, nil
	}

	c.logger.Debug("reading definition", "path", locator)
	var (
		info fs.FileInfo
		err  error
	)
	if c.fsys != nil {
		info, err = fs.Stat(c.fsys, fsPath(locator))
	} else {
		info, err = os.Stat(locator)
	}
	if err != nil {
		return nil, &oaserrors.LoadError{Locator: locator, Message: "unreadable file", Cause: err}
	}
	if info.IsDir() {
		return nil, &oaserrors.LoadError{Locator: locator, Message: "is a directory"}
	}
	if info.Size() > c.maxFileSize {
		return nil, tooLarge(locator, info.Size(), c.maxFileSize)
	}

	var data []byte
	if c.fsys != nil {
		data, err = fs.ReadFile(c.fsys, fsPath(locator))
	} else {
		data, err = os.ReadFile(locator) //nolint:gosec // G304 - reading user-provided paths is the purpose of the CLI
	}
	if err != nil {
		return nil, &oaserrors.LoadError{Locator: locator, Message: "unreadable file", Cause: err}
	}
	return data, nil
}

// Reader reads additional documents with the same collaborators as Load,
// for following external references.
type Reader struct {
	cfg *config
}

// NewReader creates a Reader.
func NewReader(opts ...Option) (*Reader, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Reader{cfg: cfg}, nil
}

// Read loads a path or URL.
func (r *Reader) Read(ctx context.Context, locator string) ([]byte, error) {
	return r.cfg.load(ctx, locator, IsURL(locator))
}

func tooLarge(locator string, size, limit int64) error {
	return &oaserrors.LoadError{
		Locator: locator,
		Message: fmt.Sprintf("file size %s exceeds limit of %s", FormatBytes(size), FormatBytes(limit)),
	}
}

// fsPath converts a locator to an fs.FS path.
func fsPath(locator string) string {
	return path.Clean(filepath.ToSlash(locator))
}

// FormatBytes formats a byte count using binary units (KiB, MiB, ...).
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
