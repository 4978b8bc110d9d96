package analyzer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/httputil"
	"github.com/docsync/docsync/internal/pathutil"
	"github.com/docsync/docsync/oaserrors"
	"github.com/docsync/docsync/walker"
)

// polymorphismKeywords are the schema composition keywords.
var polymorphismKeywords = []string{"allOf", "anyOf", "oneOf"}

// Analyze reports which catalog features doc uses, with a JSON pointer for
// every occurrence, along with general statistics. doc must be an OpenAPI
// 3.x document; it is not modified.
//
// Every catalog key is present in the result. Unused features have
// Present=false and empty Locations.
func Analyze(doc *document.Document) (*Result, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("analyzer: no document")
	}
	format, version := doc.Classify()
	if format != document.FormatOpenAPI {
		return nil, &oaserrors.MalformedDocumentError{
			Pointer: "#",
			Message: fmt.Sprintf("expected an OpenAPI 3.x document, got %s", format.Label()),
		}
	}

	c := newCollector()
	err := walker.Walk(doc,
		walker.WithDocumentHandler(c.document),
		walker.WithServerHandler(c.server),
		walker.WithPathItemHandler(c.pathItem),
		walker.WithParameterHandler(c.parameter),
		walker.WithHeaderHandler(c.header),
		walker.WithMediaTypeHandler(c.mediaType),
		walker.WithLinkHandler(c.link),
		walker.WithCallbackHandler(c.callback),
		walker.WithSchemaHandler(c.schema),
		walker.WithSecuritySchemeHandler(c.securityScheme),
		walker.WithExtensionHandler(c.extension),
		walker.WithRefHandler(c.ref),
	)
	if err != nil {
		return nil, err
	}
	c.add(FeatureCircularRefs, c.refs.cycles()...)

	return c.result(version), nil
}

// collector accumulates feature locations and statistics during the walk.
type collector struct {
	locations     map[string][]string
	paths         int
	operations    int
	schemas       int
	servers       []string
	mediaTypes    []string
	securityTypes []string
	refs          *refGraph
}

func newCollector() *collector {
	return &collector{
		locations: make(map[string][]string),
		refs:      newRefGraph(),
	}
}

func (c *collector) add(key string, pointers ...string) {
	c.locations[key] = append(c.locations[key], pointers...)
}

func (c *collector) document(_ *walker.WalkContext, root *document.Map) walker.Action {
	if hooks, ok := root.Map("webhooks"); ok {
		for _, name := range hooks.Keys() {
			if !strings.HasPrefix(name, "x-") {
				c.add(FeatureWebhooks, pathutil.Join("#/webhooks", name))
			}
		}
	}
	if paths, ok := root.Map("paths"); ok {
		c.countOperations(root, paths)
	}
	if components, ok := root.Map("components"); ok {
		if schemas, ok := components.Map(pathutil.SectionSchemas); ok {
			c.schemas = schemas.Len()
		}
	}
	return walker.Continue
}

func (c *collector) server(wc *walker.WalkContext, server *document.Map) walker.Action {
	if url, ok := server.String("url"); ok && !slices.Contains(c.servers, url) {
		c.servers = append(c.servers, url)
	}
	if vars, ok := server.Map("variables"); ok && vars.Len() > 0 {
		c.add(FeatureServerVariables, pathutil.Join(wc.Pointer, "variables"))
	}
	return walker.Continue
}

// countOperations counts the path items of paths and their operations,
// looking through local path item references.
func (c *collector) countOperations(root, paths *document.Map) {
	paths.Range(func(key string, v any) bool {
		item, ok := v.(*document.Map)
		if !ok || strings.HasPrefix(key, "x-") {
			return true
		}
		c.paths++
		resolved, err := document.ResolvePathItem(root, item, pathutil.Join("#/paths", key))
		if err != nil {
			return true
		}
		resolved.Range(func(method string, op any) bool {
			if _, ok := op.(*document.Map); ok && httputil.IsMethod(method) {
				c.operations++
			}
			return true
		})
		return true
	})
}

func (c *collector) pathItem(wc *walker.WalkContext, item *document.Map) walker.Action {
	if params, ok := item.Slice("parameters"); ok && len(params) > 0 {
		c.add(FeatureCommonParameters, pathutil.Join(wc.Pointer, "parameters"))
	}
	return walker.Continue
}

func (c *collector) parameter(wc *walker.WalkContext, param *document.Map) walker.Action {
	if param.Has("style") {
		c.add(FeatureStyle, pathutil.Join(wc.Pointer, "style"))
	}
	return walker.Continue
}

func (c *collector) header(wc *walker.WalkContext, header *document.Map) walker.Action {
	if header.Has("style") {
		c.add(FeatureStyle, pathutil.Join(wc.Pointer, "style"))
	}
	return walker.Continue
}

func (c *collector) mediaType(wc *walker.WalkContext, _ *document.Map) walker.Action {
	if !slices.Contains(c.mediaTypes, wc.Name) {
		c.mediaTypes = append(c.mediaTypes, wc.Name)
	}
	return walker.Continue
}

func (c *collector) link(wc *walker.WalkContext, _ *document.Map) walker.Action {
	c.add(FeatureLinks, wc.Pointer)
	return walker.Continue
}

func (c *collector) callback(wc *walker.WalkContext, _ *document.Map) walker.Action {
	c.add(FeatureCallbacks, wc.Pointer)
	return walker.Continue
}

func (c *collector) schema(wc *walker.WalkContext, schema *document.Map) walker.Action {
	if v, ok := schema.Get("additionalProperties"); ok && v != false {
		c.add(FeatureAdditionalProperties, pathutil.Join(wc.Pointer, "additionalProperties"))
	}
	if schema.Has("discriminator") {
		c.add(FeatureDiscriminators, pathutil.Join(wc.Pointer, "discriminator"))
	}
	for _, kw := range polymorphismKeywords {
		if schema.Has(kw) {
			c.add(FeaturePolymorphism, pathutil.Join(wc.Pointer, kw))
		}
	}
	if schema.Has("xml") {
		c.add(FeatureXML, pathutil.Join(wc.Pointer, "xml"))
	}
	return walker.Continue
}

func (c *collector) securityScheme(_ *walker.WalkContext, scheme *document.Map) walker.Action {
	if typ, ok := scheme.String("type"); ok && !slices.Contains(c.securityTypes, typ) {
		c.securityTypes = append(c.securityTypes, typ)
	}
	return walker.Continue
}

func (c *collector) extension(wc *walker.WalkContext, key string, value any) {
	switch key {
	case ExtensionDefault, ExtensionReadmeRefName:
		c.add(key, pathutil.Join(wc.Pointer, key))
	case readmeExtension:
		readme, ok := value.(*document.Map)
		if !ok {
			return
		}
		readme.Range(func(sub string, _ any) bool {
			if feature, ok := readmeSubKeys[sub]; ok {
				c.add(feature, pathutil.Join(wc.Pointer, key, sub))
			}
			return true
		})
	default:
		if feature, ok := legacyExtensions[key]; ok {
			c.add(feature, pathutil.Join(wc.Pointer, key))
		}
	}
}

func (c *collector) ref(_ *walker.WalkContext, ref *walker.RefInfo) walker.Action {
	c.refs.add(ref.SourcePointer, ref.Ref)
	return walker.Continue
}

func (c *collector) result(version string) *Result {
	r := &Result{
		General:     make(map[string]Statistic, len(generalStatistics)),
		OpenAPI:     records(openAPICatalog, c.locations),
		Platform:    records(platformCatalog, c.locations),
		SpecVersion: version,
	}
	count := func(key, name string, n int) {
		r.General[key] = Statistic{Name: name, Count: &n}
	}
	list := func(key, name string, values []string) {
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		if sorted == nil {
			sorted = []string{}
		}
		r.General[key] = Statistic{Name: name, Values: sorted}
	}
	for _, s := range generalStatistics {
		switch s.key {
		case StatPaths:
			count(s.key, s.name, c.paths)
		case StatOperations:
			count(s.key, s.name, c.operations)
		case StatSchemas:
			count(s.key, s.name, c.schemas)
		case StatServers:
			r.General[s.key] = Statistic{Name: s.name, Values: append([]string{}, c.servers...)}
		case StatMediaTypes:
			list(s.key, s.name, c.mediaTypes)
		case StatSecurityTypes:
			list(s.key, s.name, c.securityTypes)
		}
	}
	return r
}

func records(entries []catalogEntry, locations map[string][]string) map[string]FeatureRecord {
	out := make(map[string]FeatureRecord, len(entries))
	for _, e := range entries {
		locs := locations[e.key]
		if locs == nil {
			locs = []string{}
		}
		out[e.key] = FeatureRecord{
			Key:         e.key,
			Present:     len(locs) > 0,
			Locations:   locs,
			Description: e.description,
			DocsURL:     e.docs,
		}
	}
	return out
}
