package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/httputil"
	"github.com/docsync/docsync/internal/pathutil"
)

// oas2Context holds the document-level fields operations fall back to.
type oas2Context struct {
	root     *document.Map
	consumes any
	produces any
}

// bodyParam is a body or formData parameter with the component name it was
// referenced through, if any.
type bodyParam struct {
	param   *document.Map
	refName string
	pointer string
}

// convertOAS2ToOAS3 converts an OAS 2.0 document to OAS 3.0.3
func (s *conversion) convertOAS2ToOAS3(src *document.Map) (*document.Document, error) {
	ctx := &oas2Context{root: src}
	ctx.consumes, _ = src.Get("consumes")
	ctx.produces, _ = src.Get("produces")

	dst := document.NewMap()
	dst.Set("openapi", TargetVersion)
	copyKeys(src, dst, "info")
	dst.Set("servers", s.convertServers(src))
	copyKeys(src, dst, "tags")

	if raw, ok := src.Get("paths"); ok {
		paths, isMap := raw.(*document.Map)
		if !isMap {
			return nil, s.fail("#/paths", "paths must be an object")
		}
		converted, err := s.convertPaths(paths, ctx)
		if err != nil {
			return nil, err
		}
		dst.Set("paths", converted)
	} else {
		dst.Set("paths", document.NewMap())
	}

	setIfNotEmpty(dst, "components", s.convertComponents(src, ctx))
	copyKeys(src, dst, "security", "externalDocs")
	copyExtensions(src, dst)

	// Rewrite all $ref paths from OAS 2.0 to OAS 3.x format
	document.RewriteRefs(dst, func(ref string) (string, bool) {
		next := pathutil.RewriteOAS2Ref(ref)
		return next, next != ref
	})
	return document.New(dst), nil
}

// convertServers converts OAS 2.0 host/basePath/schemes to OAS 3.x servers
func (s *conversion) convertServers(src *document.Map) []any {
	host, _ := src.String("host")
	basePath, _ := src.String("basePath")
	if basePath == "" {
		basePath = "/"
	}
	if host == "" {
		s.list.Infof("#/host", "No host specified in OAS 2.0 document, using %q as the server URL", basePath)
		return []any{document.FromPairs("url", basePath)}
	}

	raw, _ := src.Get("schemes")
	schemes := stringSlice(raw)
	if len(schemes) == 0 {
		schemes = []string{"https"}
	}
	servers := make([]any, 0, len(schemes))
	for _, scheme := range schemes {
		servers = append(servers, document.FromPairs("url", fmt.Sprintf("%s://%s%s", scheme, host, basePath)))
	}
	return servers
}

func (s *conversion) convertPaths(paths *document.Map, ctx *oas2Context) (*document.Map, error) {
	dst := document.NewMap()
	var err error
	paths.Range(func(path string, raw any) bool {
		if strings.HasPrefix(path, "x-") {
			dst.Set(path, document.DeepCopy(raw))
			return true
		}
		ptr := pathutil.Join("#/paths", path)
		item, ok := raw.(*document.Map)
		if !ok {
			err = s.fail(ptr, "path item must be an object")
			return false
		}
		var converted *document.Map
		converted, err = s.convertOAS2PathItemToOAS3(item, ctx, ptr)
		if err != nil {
			return false
		}
		dst.Set(path, converted)
		return true
	})
	return dst, err
}

// convertOAS2PathItemToOAS3 converts an OAS 2.0 path item to OAS 3.x
func (s *conversion) convertOAS2PathItemToOAS3(src *document.Map, ctx *oas2Context, ptr string) (*document.Map, error) {
	dst := document.NewMap()
	if src.Has(document.RefKey) {
		s.warn(ptr, "Path item uses $ref", "The referenced path item is not converted")
		return src.Clone(), nil
	}

	params, _ := src.Slice("parameters")
	shared, bodies, err := s.convertParameters(params, ctx, ptr+"/parameters")
	if err != nil {
		return nil, err
	}
	setIfNotEmpty(dst, "parameters", shared)

	var convErr error
	src.Range(func(key string, raw any) bool {
		switch {
		case httputil.IsMethod(key):
			op, ok := raw.(*document.Map)
			if !ok {
				convErr = s.fail(pathutil.Join(ptr, key), "operation must be an object")
				return false
			}
			var converted *document.Map
			converted, convErr = s.convertOAS2OperationToOAS3(op, ctx, pathutil.Join(ptr, key), bodies)
			if convErr != nil {
				return false
			}
			dst.Set(key, converted)
		case strings.HasPrefix(key, "x-"):
			dst.Set(key, document.DeepCopy(raw))
		}
		return true
	})
	return dst, convErr
}

// convertOAS2OperationToOAS3 converts an OAS 2.0 operation to OAS 3.x.
// inherited holds the body and formData parameters of the enclosing path item.
func (s *conversion) convertOAS2OperationToOAS3(src *document.Map, ctx *oas2Context, ptr string, inherited []bodyParam) (*document.Map, error) {
	dst := document.NewMap()
	copyKeys(src, dst, "tags", "summary", "description", "externalDocs", "operationId")

	params, _ := src.Slice("parameters")
	converted, bodies, err := s.convertParameters(params, ctx, ptr+"/parameters")
	if err != nil {
		return nil, err
	}
	setIfNotEmpty(dst, "parameters", converted)
	if len(bodies) == 0 {
		bodies = inherited
	}

	consumes := ctx.consumes
	if v, ok := src.Get("consumes"); ok {
		consumes = v
	}
	if len(bodies) > 0 {
		dst.Set("requestBody", s.convertOAS2RequestBody(bodies, stringSlice(consumes), ptr))
	}

	produces := ctx.produces
	if v, ok := src.Get("produces"); ok {
		produces = v
	}
	if responses, ok := src.Map("responses"); ok {
		dst.Set("responses", s.convertResponses(responses, stringSlice(produces), ptr+"/responses"))
	}

	copyKeys(src, dst, "deprecated", "security")
	if schemes, ok := src.Get("schemes"); ok && len(stringSlice(schemes)) > 0 {
		s.warn(ptr+"/schemes", "Operation overrides schemes", "OAS 3.x has no per-operation schemes; the document servers apply")
	}
	copyExtensions(src, dst)
	return dst, nil
}

// convertParameters converts a parameters array, separating body and
// formData parameters that become the request body.
func (s *conversion) convertParameters(params []any, ctx *oas2Context, ptr string) ([]any, []bodyParam, error) {
	var converted []any
	var bodies []bodyParam
	for i, raw := range params {
		paramPtr := ptr + "/" + strconv.Itoa(i)
		p, ok := raw.(*document.Map)
		if !ok {
			return nil, nil, s.fail(paramPtr, "parameter must be an object")
		}
		target, refName := p, ""
		if ref, isRef := p.String(document.RefKey); isRef {
			if !document.IsLocalRef(ref) {
				converted = append(converted, p.Clone())
				continue
			}
			resolved, err := document.Resolve(ctx.root, ref)
			if err != nil {
				return nil, nil, s.failWithCause(paramPtr, err, "unresolvable parameter reference %q", ref)
			}
			if target, ok = resolved.(*document.Map); !ok {
				return nil, nil, s.fail(paramPtr, "parameter reference %q does not designate an object", ref)
			}
			if strings.HasPrefix(ref, pathutil.RefPrefixParameters) {
				refName = pathutil.UnescapeToken(strings.TrimPrefix(ref, pathutil.RefPrefixParameters))
			}
		}

		in, _ := target.String("in")
		switch {
		case in == "body" || in == "formData":
			bodies = append(bodies, bodyParam{param: target, refName: refName, pointer: paramPtr})
		case p != target:
			converted = append(converted, p.Clone())
		default:
			converted = append(converted, s.convertOAS2ParameterToOAS3(target, paramPtr))
		}
	}
	return converted, bodies, nil
}

// convertOAS2ParameterToOAS3 converts a non-body OAS 2.0 parameter.
func (s *conversion) convertOAS2ParameterToOAS3(param *document.Map, ptr string) *document.Map {
	dst := document.NewMap()
	copyKeys(param, dst, "name", "in", "description", "required", "deprecated", "allowEmptyValue")

	in, _ := param.String("in")
	typ, _ := param.String("type")
	format, hasFormat := param.String("collectionFormat")
	if typ == "array" {
		if !hasFormat {
			format = "csv"
		}
		switch format {
		case "csv":
			if in == "query" || in == "cookie" {
				dst.Set("style", "form")
				dst.Set("explode", false)
			} else {
				dst.Set("style", "simple")
			}
		case "ssv":
			dst.Set("style", "spaceDelimited")
			dst.Set("explode", false)
		case "pipes":
			dst.Set("style", "pipeDelimited")
			dst.Set("explode", false)
		case "multi":
			dst.Set("style", "form")
			dst.Set("explode", true)
		default:
			s.warn(ptr, fmt.Sprintf("Parameter uses collectionFormat '%s'", format),
				"OAS 3.x uses 'style' and 'explode' instead and has no equivalent for this format")
		}
	}

	dst.Set("schema", parameterSchema(param))
	copyExtensions(param, dst)
	return dst
}

// convertOAS2RequestBody builds a requestBody from body or formData parameters
// and the consumes media types.
func (s *conversion) convertOAS2RequestBody(bodies []bodyParam, consumes []string, ptr string) *document.Map {
	var body *bodyParam
	var form []bodyParam
	for i := range bodies {
		if in, _ := bodies[i].param.String("in"); in == "body" {
			if body == nil {
				body = &bodies[i]
			}
			continue
		}
		form = append(form, bodies[i])
	}

	if body != nil {
		if len(form) > 0 {
			s.warn(ptr, "Operation mixes body and formData parameters", "formData parameters are dropped")
		}
		if body.refName != "" {
			return document.FromPairs(document.RefKey, pathutil.ComponentRef(pathutil.SectionRequestBodies, body.refName))
		}
		return requestBodyFromBody(body.param, consumes)
	}
	return s.requestBodyFromForm(form, consumes)
}

// requestBodyFromBody converts a body parameter into a requestBody object.
func requestBodyFromBody(param *document.Map, consumes []string) *document.Map {
	if len(consumes) == 0 {
		consumes = []string{getDefaultMediaType()}
	}
	dst := document.NewMap()
	copyKeys(param, dst, "description")
	content := document.NewMap()
	schema, _ := param.Get("schema")
	for _, mt := range consumes {
		content.Set(mt, document.FromPairs("schema", convertOAS2SchemaToOAS3(schema)))
	}
	dst.Set("content", content)
	if required, ok := param.Bool("required"); ok {
		dst.Set("required", required)
	}
	copyExtensions(param, dst)
	return dst
}

// requestBodyFromForm merges formData parameters into an object schema.
func (s *conversion) requestBodyFromForm(form []bodyParam, consumes []string) *document.Map {
	properties := document.NewMap()
	var required []any
	hasFile := false
	for _, f := range form {
		name, _ := f.param.String("name")
		if t, _ := f.param.String("type"); t == "file" {
			hasFile = true
		}
		prop := parameterSchema(f.param)
		copyKeys(f.param, prop, "description")
		properties.Set(name, prop)
		if req, _ := f.param.Bool("required"); req {
			required = append(required, name)
		}
	}

	var mediaTypes []string
	for _, mt := range consumes {
		if mt == mediaTypeForm || mt == mediaTypeMultipart {
			mediaTypes = append(mediaTypes, mt)
		}
	}
	if len(mediaTypes) == 0 {
		if hasFile {
			mediaTypes = []string{mediaTypeMultipart}
		} else {
			mediaTypes = []string{mediaTypeForm}
		}
	}

	content := document.NewMap()
	for _, mt := range mediaTypes {
		schema := document.FromPairs("type", "object", "properties", properties.Clone())
		setIfNotEmpty(schema, "required", document.DeepCopy(required))
		content.Set(mt, document.FromPairs("schema", schema))
	}
	body := document.FromPairs("content", content)
	if len(required) > 0 {
		body.Set("required", true)
	}
	return body
}

func (s *conversion) convertResponses(src *document.Map, produces []string, ptr string) *document.Map {
	dst := document.NewMap()
	src.Range(func(code string, raw any) bool {
		if strings.HasPrefix(code, "x-") {
			dst.Set(code, document.DeepCopy(raw))
			return true
		}
		r, ok := raw.(*document.Map)
		if !ok {
			dst.Set(code, document.DeepCopy(raw))
			return true
		}
		dst.Set(code, convertOAS2ResponseToOAS3(r, produces))
		return true
	})
	return dst
}

// convertOAS2ResponseToOAS3 converts an OAS 2.0 response to OAS 3.x format
func convertOAS2ResponseToOAS3(src *document.Map, produces []string) *document.Map {
	if src.Has(document.RefKey) {
		return src.Clone()
	}
	dst := document.NewMap()
	description, _ := src.String("description")
	dst.Set("description", description)

	if headers, ok := src.Map("headers"); ok {
		converted := document.NewMap()
		headers.Range(func(name string, raw any) bool {
			h, ok := raw.(*document.Map)
			if !ok {
				return true
			}
			header := document.NewMap()
			copyKeys(h, header, "description")
			header.Set("schema", parameterSchema(h))
			copyExtensions(h, header)
			converted.Set(name, header)
			return true
		})
		setIfNotEmpty(dst, "headers", converted)
	}

	content := document.NewMap()
	if schema, ok := src.Get("schema"); ok {
		mediaTypes := produces
		if len(mediaTypes) == 0 {
			mediaTypes = []string{getDefaultMediaType()}
		}
		for _, mt := range mediaTypes {
			content.Set(mt, document.FromPairs("schema", convertOAS2SchemaToOAS3(schema)))
		}
	}
	if examples, ok := src.Map("examples"); ok {
		examples.Range(func(mt string, example any) bool {
			content.Ensure(mt).Set("example", document.DeepCopy(example))
			return true
		})
	}
	setIfNotEmpty(dst, "content", content)
	copyExtensions(src, dst)
	return dst
}

// convertComponents gathers definitions, parameters, responses and
// securityDefinitions into an OAS 3.x components object.
func (s *conversion) convertComponents(src *document.Map, ctx *oas2Context) *document.Map {
	components := document.NewMap()

	if defs, ok := src.Map("definitions"); ok {
		schemas := document.NewMap()
		defs.Range(func(name string, schema any) bool {
			schemas.Set(name, convertOAS2SchemaToOAS3(schema))
			return true
		})
		setIfNotEmpty(components, pathutil.SectionSchemas, schemas)
	}

	if params, ok := src.Map("parameters"); ok {
		parameters := document.NewMap()
		requestBodies := document.NewMap()
		params.Range(func(name string, raw any) bool {
			p, ok := raw.(*document.Map)
			if !ok {
				return true
			}
			ptr := pathutil.Join("#/parameters", name)
			switch in, _ := p.String("in"); in {
			case "body":
				requestBodies.Set(name, requestBodyFromBody(p, stringSlice(ctx.consumes)))
			case "formData":
				s.warn(ptr, fmt.Sprintf("formData parameter %q has no reusable OAS 3.x equivalent", name),
					"It is inlined into the request body of each operation that references it")
			default:
				parameters.Set(name, s.convertOAS2ParameterToOAS3(p, ptr))
			}
			return true
		})
		setIfNotEmpty(components, pathutil.SectionParameters, parameters)
		setIfNotEmpty(components, pathutil.SectionRequestBodies, requestBodies)
	}

	if resps, ok := src.Map("responses"); ok {
		responses := document.NewMap()
		resps.Range(func(name string, raw any) bool {
			if r, ok := raw.(*document.Map); ok {
				responses.Set(name, convertOAS2ResponseToOAS3(r, stringSlice(ctx.produces)))
			}
			return true
		})
		setIfNotEmpty(components, pathutil.SectionResponses, responses)
	}

	if defs, ok := src.Map("securityDefinitions"); ok {
		setIfNotEmpty(components, pathutil.SectionSecuritySchemes, s.convertSecurityDefinitions(defs))
	}
	return components
}

// convertSecurityDefinitions converts OAS 2.0 securityDefinitions to OAS 3.x components.securitySchemes
func (s *conversion) convertSecurityDefinitions(defs *document.Map) *document.Map {
	schemes := document.NewMap()
	defs.Range(func(name string, raw any) bool {
		def, ok := raw.(*document.Map)
		if !ok {
			return true
		}
		ptr := pathutil.Join("#/securityDefinitions", name)
		scheme := document.NewMap()
		typ, _ := def.String("type")

		switch typ {
		case "basic":
			scheme.Set("type", "http")
			scheme.Set("scheme", "basic")
		case "apiKey":
			scheme.Set("type", "apiKey")
			copyKeys(def, scheme, "name", "in")
		case "oauth2":
			scheme.Set("type", "oauth2")
			scopes, ok := def.Map("scopes")
			if !ok {
				scopes = document.NewMap()
			}
			flow := document.NewMap()
			flowName, _ := def.String("flow")
			switch flowName {
			case "implicit":
				copyKeys(def, flow, "authorizationUrl")
				flowName = "implicit"
			case "password":
				copyKeys(def, flow, "tokenUrl")
			case "application":
				copyKeys(def, flow, "tokenUrl")
				flowName = "clientCredentials"
			case "accessCode":
				copyKeys(def, flow, "authorizationUrl", "tokenUrl")
				flowName = "authorizationCode"
			default:
				s.warn(ptr, fmt.Sprintf("Unknown OAuth2 flow type: %s", flowName),
					"This may not convert correctly to OAS 3.x")
				flowName = ""
			}
			if flowName != "" {
				flow.Set("scopes", scopes.Clone())
				scheme.Set("flows", document.FromPairs(flowName, flow))
			}
		default:
			scheme.Set("type", typ)
		}
		copyKeys(def, scheme, "description")
		copyExtensions(def, scheme)
		schemes.Set(name, scheme)
		return true
	})
	return schemes
}
