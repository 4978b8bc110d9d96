package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/httputil"
	"github.com/docsync/docsync/internal/pathutil"
)

// componentNameRegex is the pattern OpenAPI 3 requires of component keys.
var componentNameRegex = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)

var oas3ParameterLocations = []string{"query", "header", "path", "cookie"}

// validateOAS3 performs OAS 3.x specific validation
func (c *checker) validateOAS3(doc *document.Document, version string) {
	root := doc.Root
	if raw, _ := root.Get("openapi"); !isString(raw) {
		c.baseURL = "https://spec.openapis.org/oas/v3.0.3"
		c.addError("#/openapi", "openapi field must be a string such as \"3.0.3\"", "openapi-object")
	} else {
		c.baseURL = "https://spec.openapis.org/oas/v" + version
		if !document.IsSupportedOpenAPI(version) {
			c.addError("#/openapi", fmt.Sprintf("Unsupported OpenAPI version: %s (expected 3.0.x or 3.1.x)", version), "versions")
		}
	}
	is30 := document.MinorSeries(version) != "3.1"

	c.validateInfo(root)

	paths, hasPaths := root.Get("paths")
	switch {
	case hasPaths:
		if pm, ok := paths.(*document.Map); ok {
			c.validatePaths(pm, "#/paths", is30, oas3ParameterLocations)
		} else {
			c.addError("#/paths", "paths must be an object", "paths-object")
		}
	case is30:
		c.addError("#/paths", "Document must have a paths object", "openapi-object")
	case !root.Has("webhooks") && !root.Has("components"):
		c.addError("#", "Document must have at least one of paths, webhooks or components", "openapi-object")
	}

	if hooks, ok := root.Get("webhooks"); ok {
		if hm, isMap := hooks.(*document.Map); isMap {
			c.validatePaths(hm, "#/webhooks", false, oas3ParameterLocations)
		} else {
			c.addError("#/webhooks", "webhooks must be an object", "fixed-fields")
		}
	}

	c.validateServers(root)
	c.validateComponents(root)
	c.validateOperationIDs(root)
	c.validateLocalRefs(root)
}

// validateInfo checks the info object shared by OpenAPI and Swagger.
func (c *checker) validateInfo(root *document.Map) {
	raw, ok := root.Get("info")
	if !ok {
		c.addError("#/info", "Document must have an info object", "info-object")
		return
	}
	info, ok := raw.(*document.Map)
	if !ok {
		c.addError("#/info", "info must be an object", "info-object")
		return
	}
	if !nonEmptyScalar(info, "title") {
		c.addError("#/info/title", "Info object must have a title", "info-object")
	}
	if !nonEmptyScalar(info, "version") {
		c.addError("#/info/version", "Info object must have a version", "info-object")
	}
}

// validatePaths checks a paths or webhooks object.
func (c *checker) validatePaths(items *document.Map, base string, responsesRequired bool, locations []string) {
	isPaths := base == "#/paths"
	if items.Len() == 0 && isPaths && c.v.IncludeWarnings {
		c.addWarning(base, "Document has no paths", "paths-object")
	}
	items.Range(func(key string, raw any) bool {
		if strings.HasPrefix(key, "x-") {
			return true
		}
		itemPtr := pathutil.Join(base, key)
		if isPaths && !strings.HasPrefix(key, "/") {
			c.addError(itemPtr, fmt.Sprintf("Path %q must begin with /", key), "paths-object")
		}
		item, ok := raw.(*document.Map)
		if !ok {
			c.addError(itemPtr, "Path item must be an object", "path-item-object")
			return true
		}
		if item.Has(document.RefKey) {
			return true
		}

		pathParams := c.validateParameters(item, itemPtr, locations)
		item.Range(func(method string, opRaw any) bool {
			if !httputil.IsMethod(method) {
				return true
			}
			opPtr := pathutil.Join(itemPtr, method)
			op, ok := opRaw.(*document.Map)
			if !ok {
				c.addError(opPtr, "Operation must be an object", "operation-object")
				return true
			}
			opParams := c.validateParameters(op, opPtr, locations)
			if c.v.StrictMode && !op.Has("operationId") {
				c.addWarning(opPtr, "Operation should have an operationId", "operation-object")
			}
			c.validateResponses(op, opPtr, responsesRequired)
			if body, ok := op.Map("requestBody"); ok {
				c.validateContent(body, opPtr+"/requestBody")
			}
			if isPaths {
				c.validatePathTemplate(key, opPtr, pathParams, opParams)
			}
			return true
		})
		return true
	})
}

// validateParameters checks the parameters array of a path item or
// operation and returns the names of its declared path parameters.
// A nil return with ok=false means a $ref hid the declaration.
func (c *checker) validateParameters(holder *document.Map, base string, locations []string) paramSet {
	set := paramSet{names: map[string]bool{}}
	raw, ok := holder.Get("parameters")
	if !ok {
		return set
	}
	params, ok := raw.([]any)
	if !ok {
		c.addError(pathutil.Join(base, "parameters"), "parameters must be an array", "parameter-object")
		return set
	}
	for i, pRaw := range params {
		ptr := fmt.Sprintf("%s/parameters/%d", base, i)
		p, ok := pRaw.(*document.Map)
		if !ok {
			c.addError(ptr, "Parameter must be an object", "parameter-object")
			continue
		}
		if p.Has(document.RefKey) {
			set.opaque = true
			continue
		}
		name, hasName := p.String("name")
		if !hasName || name == "" {
			c.addError(ptr+"/name", "Parameter must have a name", "parameter-object")
		}
		in, _ := p.String("in")
		if !contains(locations, in) {
			c.addError(ptr+"/in", fmt.Sprintf("Parameter location must be one of %s, got %q", strings.Join(locations, ", "), in), "parameter-object")
			continue
		}
		if in == "path" {
			if req, _ := p.Bool("required"); !req {
				c.addError(ptr+"/required", fmt.Sprintf("Path parameter %q must be required", name), "parameter-object")
			}
			set.names[name] = true
		}
		if in == "body" && !p.Has("schema") {
			c.addError(ptr+"/schema", fmt.Sprintf("Body parameter %q must have a schema", name), "parameter-object")
		}
	}
	return set
}

// paramSet records the path parameters a parameters array declares.
type paramSet struct {
	names  map[string]bool
	opaque bool
}

// validatePathTemplate warns about template variables that no parameter
// declares. Declarations hidden behind $ref are not followed.
func (c *checker) validatePathTemplate(path, opPtr string, pathParams, opParams paramSet) {
	if !c.v.IncludeWarnings || pathParams.opaque || opParams.opaque {
		return
	}
	for _, m := range pathutil.PathParamRegex.FindAllStringSubmatch(path, -1) {
		name := m[1]
		if !pathParams.names[name] && !opParams.names[name] {
			c.addWarning(opPtr, fmt.Sprintf("Path parameter {%s} is not declared", name), "path-templating")
		}
	}
}

// validateResponses checks an operation's responses object.
func (c *checker) validateResponses(op *document.Map, opPtr string, required bool) {
	raw, ok := op.Get("responses")
	ptr := opPtr + "/responses"
	if !ok {
		if required {
			c.addError(ptr, "Operation must have a responses object", "operation-object")
		}
		return
	}
	responses, ok := raw.(*document.Map)
	if !ok {
		c.addError(ptr, "responses must be an object", "responses-object")
		return
	}
	if responses.Len() == 0 && required {
		c.addError(ptr, "Responses object must contain at least one response", "responses-object")
	}
	for _, code := range responses.Keys() {
		if !httputil.ValidateStatusCode(code) {
			c.addError(pathutil.Join(ptr, code), fmt.Sprintf("Invalid HTTP status code: %s", code), "responses-object")
		}
		if resp, ok := responses.Map(code); ok {
			c.validateContent(resp, pathutil.Join(ptr, code))
		}
	}
}

// validateContent checks the media type keys of a content map.
func (c *checker) validateContent(holder *document.Map, base string) {
	content, ok := holder.Map("content")
	if !ok {
		return
	}
	for _, mediaType := range content.Keys() {
		if !httputil.IsValidMediaType(mediaType) {
			c.addError(pathutil.Join(base, "content", mediaType), fmt.Sprintf("Invalid media type: %s", mediaType), "media-type-object")
		}
	}
}

func (c *checker) validateServers(root *document.Map) {
	raw, ok := root.Get("servers")
	if !ok {
		return
	}
	servers, ok := raw.([]any)
	if !ok {
		c.addError("#/servers", "servers must be an array", "server-object")
		return
	}
	for i, sRaw := range servers {
		ptr := fmt.Sprintf("#/servers/%d", i)
		s, ok := sRaw.(*document.Map)
		if !ok {
			c.addError(ptr, "Server must be an object", "server-object")
			continue
		}
		if !nonEmptyScalar(s, "url") {
			c.addError(ptr+"/url", "Server must have a url", "server-object")
		}
	}
}

func (c *checker) validateComponents(root *document.Map) {
	raw, ok := root.Get("components")
	if !ok {
		return
	}
	comps, ok := raw.(*document.Map)
	if !ok {
		c.addError("#/components", "components must be an object", "components-object")
		return
	}
	comps.Range(func(section string, sRaw any) bool {
		if strings.HasPrefix(section, "x-") {
			return true
		}
		ptr := pathutil.Join("#/components", section)
		sm, ok := sRaw.(*document.Map)
		if !ok {
			c.addError(ptr, fmt.Sprintf("components.%s must be an object", section), "components-object")
			return true
		}
		for _, name := range sm.Keys() {
			if !componentNameRegex.MatchString(name) {
				c.addError(pathutil.Join(ptr, name), fmt.Sprintf("Component name %q must match %s", name, componentNameRegex), "components-object")
			}
		}
		return true
	})
}
