package bundler

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	cache "github.com/patrickmn/go-cache"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/pathutil"
	"github.com/docsync/docsync/loader"
	"github.com/docsync/docsync/oaserrors"
)

// invalidNameChars matches characters not allowed in component names.
var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// remoteDocuments holds decoded documents fetched over HTTP, shared by all
// Bundle calls. Entries are never modified; targets are copied out.
var remoteDocuments = cache.New(DefaultCacheTTL, 2*DefaultCacheTTL)

// Result contains the outcome of bundling.
type Result struct {
	// Document is the bundled document
	Document *document.Document
	// Components lists the local references created for external targets,
	// in the order they were inlined
	Components []string
	// Sources lists the external documents that were read
	Sources []string
}

// Bundle inlines every external $ref target of doc into its components and
// rewrites the references to point at them. A path item under paths or
// webhooks that references another document is replaced by a copy of its
// target instead, since OpenAPI 3.0 has no components.pathItems. base is the locator doc was
// read from; relative references resolve against it.
//
// Internal references, including circular ones, are left as they are.
// The first reference that cannot be resolved stops bundling with an
// *oaserrors.BundleError. doc is modified in place.
//
// Example:
//
//	result, err := bundler.Bundle(ctx, doc, "api/openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Components)
func Bundle(ctx context.Context, doc *document.Document, base string, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("bundler: invalid options: %w", err)
	}
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("bundler: no document")
	}

	rootLoc := cleanLocator(base)
	b := &bundler{
		cfg:      cfg,
		root:     doc.Root,
		rootLoc:  rootLoc,
		rootDir:  locatorDir(rootLoc),
		docs:     make(map[string]any),
		registry: make(map[string]string),
		names:    make(map[string]map[string]bool),
		result:   &Result{Document: doc},
	}
	if err := b.inline(ctx, doc.Root, rootLoc, false, "#", 0); err != nil {
		return nil, err
	}
	return b.result, nil
}

// bundler carries the state of a single Bundle call.
type bundler struct {
	cfg     *bundleConfig
	root    *document.Map
	rootLoc string
	rootDir string
	// docs holds the documents read during this call
	docs map[string]any
	// registry maps an absolute external target to its local reference.
	// Entries are added before the target is traversed so cycles terminate.
	registry map[string]string
	names    map[string]map[string]bool
	result   *Result
}

// inline rewrites the external references under node. external is true
// while walking content copied from another document, where local refs
// point into that document rather than the root.
func (b *bundler) inline(ctx context.Context, node any, base string, external bool, ptr string, depth int) error {
	switch v := node.(type) {
	case *document.Map:
		if ref, ok := v.String(document.RefKey); ok {
			location, _ := document.SplitRef(ref)
			if location != "" || external {
				if isPathItemPointer(ptr) {
					return b.inlinePathItem(ctx, v, ref, base, ptr, depth)
				}
				local, err := b.resolve(ctx, ref, base, ptr, depth)
				if err != nil {
					return err
				}
				v.Set(document.RefKey, local)
			}
		}
		var err error
		v.Range(func(k string, child any) bool {
			if k == document.RefKey {
				return true
			}
			err = b.inline(ctx, child, base, external, pathutil.Join(ptr, k), depth)
			return err == nil
		})
		return err
	case []any:
		for i, item := range v {
			if err := b.inline(ctx, item, base, external, ptr+"/"+strconv.Itoa(i), depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve returns the local reference for ref, copying its target into
// components the first time it is seen.
func (b *bundler) resolve(ctx context.Context, ref, base, ptr string, depth int) (string, error) {
	abs, fragment, err := b.locateRef(ctx, ref, base, ptr, depth)
	if err != nil {
		return "", err
	}
	if abs == b.rootLoc {
		return fragment, nil
	}

	key := abs + fragment
	if local, ok := b.registry[key]; ok {
		return local, nil
	}

	target, err := b.target(ctx, ref, ptr, abs, fragment)
	if err != nil {
		return "", err
	}

	section := sectionFor(fragment, ptr)
	name := b.uniqueName(section, componentName(abs, fragment))
	local := pathutil.ComponentRef(section, name)
	b.registry[key] = local
	b.result.Components = append(b.result.Components, local)

	copied := document.DeepCopy(target)
	b.root.Ensure("components").Ensure(section).Set(name, copied)
	b.cfg.logger.Debug("inlined external reference", "ref", ref, "component", local)

	if err := b.inline(ctx, copied, abs, true, local, depth+1); err != nil {
		return "", err
	}
	return local, nil
}

// inlinePathItem replaces the contents of item, a path item found at ptr,
// with a copy of the external path item ref designates. Keys set next to
// the $ref are kept and win over the target's.
func (b *bundler) inlinePathItem(ctx context.Context, item *document.Map, ref, base, ptr string, depth int) error {
	abs, fragment, err := b.locateRef(ctx, ref, base, ptr, depth)
	if err != nil {
		return err
	}
	if abs == b.rootLoc {
		item.Set(document.RefKey, fragment)
		return nil
	}
	target, err := b.target(ctx, ref, ptr, abs, fragment)
	if err != nil {
		return err
	}
	resolved, ok := target.(*document.Map)
	if !ok {
		return bundleError(ref, ptr, "path item target is not a mapping", nil)
	}

	inlined := resolved.Clone()
	item.Range(func(k string, v any) bool {
		if k != document.RefKey {
			inlined.Set(k, v)
		}
		return true
	})
	for _, k := range slices.Clone(item.Keys()) {
		item.Delete(k)
	}
	inlined.Range(func(k string, v any) bool {
		item.Set(k, v)
		return true
	})
	b.cfg.logger.Debug("inlined external path item", "ref", ref, "pointer", ptr)

	if next, ok := item.String(document.RefKey); ok {
		return b.inlinePathItem(ctx, item, next, abs, ptr, depth+1)
	}
	return b.inline(ctx, item, abs, true, ptr, depth+1)
}

// locateRef checks the depth and context limits and returns the absolute
// locator and fragment of ref.
func (b *bundler) locateRef(ctx context.Context, ref, base, ptr string, depth int) (string, string, error) {
	if depth >= b.cfg.maxDepth {
		return "", "", bundleError(ref, ptr, fmt.Sprintf("maximum reference depth %d exceeded", b.cfg.maxDepth), nil)
	}
	if err := ctx.Err(); err != nil {
		return "", "", bundleError(ref, ptr, "bundling canceled", err)
	}

	location, fragment := document.SplitRef(ref)
	abs := base
	if location != "" {
		var err error
		if abs, err = b.locate(base, location); err != nil {
			return "", "", bundleError(ref, ptr, err.Error(), nil)
		}
	}
	return abs, fragment, nil
}

// target loads abs and returns the node fragment designates in it.
func (b *bundler) target(ctx context.Context, ref, ptr, abs, fragment string) (any, error) {
	extRoot, err := b.load(ctx, abs)
	if err != nil {
		return nil, bundleError(ref, ptr, "cannot load "+abs, err)
	}
	target, err := document.Resolve(extRoot, fragment)
	if err != nil {
		return nil, bundleError(ref, ptr, "target not found in "+abs, err)
	}
	return target, nil
}

// locate resolves location against base. File references may not leave
// the directory of the root document.
func (b *bundler) locate(base, location string) (string, error) {
	if loader.IsURL(location) {
		if !b.cfg.httpRefs {
			return "", fmt.Errorf("remote references are disabled")
		}
		return location, nil
	}
	if loader.IsURL(base) {
		if !b.cfg.httpRefs {
			return "", fmt.Errorf("remote references are disabled")
		}
		u, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("invalid base URL: %w", err)
		}
		rel, err := url.Parse(location)
		if err != nil {
			return "", fmt.Errorf("invalid reference: %w", err)
		}
		return u.ResolveReference(rel).String(), nil
	}

	var joined string
	if filepath.IsAbs(location) {
		joined = filepath.Clean(location)
	} else {
		joined = filepath.Join(locatorDir(base), filepath.FromSlash(location))
	}
	rel, err := filepath.Rel(b.rootDir, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s escapes the root document directory", location)
	}
	return joined, nil
}

// load reads and decodes an external document once per run. URLs are
// served from remoteDocuments while their entry lasts.
func (b *bundler) load(ctx context.Context, abs string) (any, error) {
	if v, ok := b.docs[abs]; ok {
		return v, nil
	}
	if len(b.result.Sources) >= b.cfg.maxDocuments {
		return nil, fmt.Errorf("too many external documents (limit %d)", b.cfg.maxDocuments)
	}
	var (
		v      any
		cached bool
		remote = loader.IsURL(abs)
	)
	if remote {
		v, cached = remoteDocuments.Get(abs)
	}
	if !cached {
		data, err := b.cfg.reader.Read(ctx, abs)
		if err != nil {
			return nil, err
		}
		if v, err = document.Decode(data); err != nil {
			return nil, err
		}
		if remote {
			remoteDocuments.Set(abs, v, b.cfg.cacheTTL)
		}
	}
	b.docs[abs] = v
	b.result.Sources = append(b.result.Sources, abs)
	return v, nil
}

func (b *bundler) uniqueName(section, name string) string {
	used, ok := b.names[section]
	if !ok {
		used = make(map[string]bool)
		if components, _ := b.root.Map("components"); components != nil {
			if existing, _ := components.Map(section); existing != nil {
				for _, k := range existing.Keys() {
					used[k] = true
				}
			}
		}
		b.names[section] = used
	}
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = name + "_" + strconv.Itoa(i)
	}
	used[candidate] = true
	return candidate
}

// sectionFor picks the components section for an external target, first
// from the target's own pointer, then from where it is referenced.
func sectionFor(fragment, ptr string) string {
	tokens := pathutil.SplitPointer(fragment)
	if len(tokens) >= 3 && tokens[0] == "components" && slices.Contains(pathutil.ComponentSections, tokens[1]) {
		return tokens[1]
	}
	if len(tokens) >= 2 {
		switch tokens[0] {
		case "definitions":
			return pathutil.SectionSchemas
		case "parameters":
			return pathutil.SectionParameters
		case "responses":
			return pathutil.SectionResponses
		}
	}

	at := pathutil.SplitPointer(ptr)
	n := len(at)
	if n > 0 && at[n-1] == "requestBody" {
		return pathutil.SectionRequestBodies
	}
	if n >= 2 {
		switch at[n-2] {
		case "parameters":
			return pathutil.SectionParameters
		case "responses":
			return pathutil.SectionResponses
		case "headers":
			return pathutil.SectionHeaders
		case "examples":
			return pathutil.SectionExamples
		case "links":
			return pathutil.SectionLinks
		case "callbacks":
			return pathutil.SectionCallbacks
		}
	}
	return pathutil.SectionSchemas
}

// componentName derives a name from the file name and the last pointer
// token: "models/pet.yaml#/Pet" becomes "pet_Pet".
func componentName(abs, fragment string) string {
	file := abs
	if loader.IsURL(abs) {
		if u, err := url.Parse(abs); err == nil {
			file = u.Path
		}
	}
	stem := strings.TrimSuffix(path.Base(filepath.ToSlash(file)), path.Ext(file))
	name := stem
	if tokens := pathutil.SplitPointer(fragment); len(tokens) > 0 {
		name = stem + "_" + tokens[len(tokens)-1]
	}
	name = invalidNameChars.ReplaceAllString(name, "_")
	if name == "" || name == "_" {
		name = "external"
	}
	return name
}

// isPathItemPointer reports whether ptr is #/paths/<template> or
// #/webhooks/<name>.
func isPathItemPointer(ptr string) bool {
	tokens := pathutil.SplitPointer(ptr)
	return len(tokens) == 2 && (tokens[0] == "paths" || tokens[0] == "webhooks")
}

func cleanLocator(locator string) string {
	if locator == "" || loader.IsURL(locator) {
		return locator
	}
	return filepath.Clean(locator)
}

func locatorDir(locator string) string {
	if locator == "" {
		return "."
	}
	return filepath.Dir(locator)
}

func bundleError(ref, ptr, message string, cause error) error {
	return &oaserrors.BundleError{Ref: ref, Pointer: ptr, Message: message, Cause: cause}
}
