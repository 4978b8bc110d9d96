package validator

import (
	"fmt"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/pathutil"
)

var oas2ParameterLocations = []string{"query", "header", "path", "formData", "body"}

// validateOAS2 performs Swagger 2.0 specific validation
func (c *checker) validateOAS2(doc *document.Document, version string) {
	c.baseURL = "https://spec.openapis.org/oas/v2.0"
	root := doc.Root

	if version != document.SwaggerVersion {
		c.addError("#/swagger", fmt.Sprintf("swagger field must be %q, got %q", document.SwaggerVersion, version), "swagger-object")
	}
	c.validateInfo(root)

	raw, ok := root.Get("paths")
	switch {
	case !ok:
		c.addError("#/paths", "Document must have a paths object", "swagger-object")
	default:
		paths, isMap := raw.(*document.Map)
		if !isMap {
			c.addError("#/paths", "paths must be an object", "paths-object")
			break
		}
		c.validatePaths(paths, "#/paths", true, oas2ParameterLocations)
		c.validateOAS2ParameterTypes(paths)
	}

	for _, section := range []string{"definitions", "parameters", "responses", "securityDefinitions"} {
		if v, ok := root.Get(section); ok {
			if _, isMap := v.(*document.Map); !isMap {
				c.addError("#/"+section, fmt.Sprintf("%s must be an object", section), "swagger-object")
			}
		}
	}

	c.validateOperationIDs(root)
	c.validateLocalRefs(root)
}

// validateOAS2ParameterTypes checks that non-body parameters declare a type.
func (c *checker) validateOAS2ParameterTypes(paths *document.Map) {
	check := func(holder *document.Map, base string) {
		params, _ := holder.Slice("parameters")
		for i, pRaw := range params {
			p, ok := pRaw.(*document.Map)
			if !ok || p.Has(document.RefKey) {
				continue
			}
			in, _ := p.String("in")
			if in == "" || in == "body" || !contains(oas2ParameterLocations, in) {
				continue
			}
			if !p.Has("type") {
				name, _ := p.String("name")
				c.addError(fmt.Sprintf("%s/parameters/%d/type", base, i), fmt.Sprintf("Parameter %q must have a type", name), "parameter-object")
			}
		}
	}
	paths.Range(func(path string, raw any) bool {
		item, ok := raw.(*document.Map)
		if !ok || item.Has(document.RefKey) {
			return true
		}
		base := pathutil.Join("#/paths", path)
		check(item, base)
		for _, op := range document.Operations(document.FromPairs(path, item)) {
			check(op.Node, pathutil.Join(base, op.Method))
		}
		return true
	})
}
