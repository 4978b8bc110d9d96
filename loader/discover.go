package loader

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/docsync/docsync/document"
)

const (
	vcsDir        = ".git"
	gitignoreFile = ".gitignore"
)

var definitionExtensions = []string{".json", ".yaml", ".yml"}

// Discover walks dir and returns every JSON or YAML file carrying an
// openapi, swagger or Postman collection marker, in lexical order.
//
// The .git directory and paths matched by dir/.gitignore are skipped. Files
// that fail to parse or carry no marker are not candidates and are skipped
// without error.
func Discover(ctx context.Context, dir string, opts ...Option) ([]SourceDescriptor, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	if dir == "" {
		dir = "."
	}
	fsys := cfg.fsys
	root := "."
	if fsys == nil {
		fsys = os.DirFS(dir)
	} else {
		root = path.Clean(filepath.ToSlash(dir))
	}

	ignore := loadIgnoreRules(fsys, root)

	var found []SourceDescriptor
	err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			cfg.logger.Debug("skipping unreadable path", "path", p, "error", walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == vcsDir || (p != root && ignore.Match(p, true)) {
				return fs.SkipDir
			}
			return nil
		}
		if !hasDefinitionExtension(p) || ignore.Match(p, false) {
			return nil
		}

		format, version, ok := probe(fsys, p, cfg.maxFileSize)
		if !ok {
			cfg.logger.Debug("not an API definition", "path", p)
			return nil
		}
		found = append(found, SourceDescriptor{
			Locator:        locatorFor(cfg.fsys == nil, dir, p),
			OriginKind:     OriginPath,
			DeclaredFormat: format,
			FormatVersion:  version,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: discovering definitions in %s: %w", dir, err)
	}

	cfg.logger.Debug("discovery finished", "dir", dir, "candidates", len(found))
	return found, nil
}

// loadIgnoreRules reads root/.gitignore. Without one, nothing but the VCS
// directory is excluded.
func loadIgnoreRules(fsys fs.FS, root string) gitignore.IgnoreMatcher {
	data, err := fs.ReadFile(fsys, path.Join(root, gitignoreFile))
	if err != nil {
		return gitignore.DummyIgnoreMatcher(false)
	}
	return gitignore.NewGitIgnoreFromReader(root, bytes.NewReader(data))
}

func hasDefinitionExtension(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range definitionExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// probe reads just enough of a file to classify it.
func probe(fsys fs.FS, p string, maxSize int64) (document.Format, string, bool) {
	if info, err := fs.Stat(fsys, p); err != nil || info.Size() > maxSize {
		return document.FormatUnknown, "", false
	}
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return document.FormatUnknown, "", false
	}
	doc, err := document.Parse(data)
	if err != nil {
		return document.FormatUnknown, "", false
	}
	format, version := doc.Classify()
	return format, version, format != document.FormatUnknown
}

func locatorFor(onDisk bool, dir, p string) string {
	if onDisk {
		return filepath.Join(dir, filepath.FromSlash(p))
	}
	return p
}

