// This file implements conversion of Postman v2.x collections to OAS 3.0.3.

package converter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/httputil"
	"github.com/docsync/docsync/internal/pathutil"
)

// postmanVarRegex matches {{variable}} placeholders.
var postmanVarRegex = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// defaultPostmanVersion is used when the collection declares no version.
const defaultPostmanVersion = "1.0.0"

// postmanCollection accumulates the OAS 3.x document built from a collection.
type postmanCollection struct {
	*conversion
	vars     map[string]string
	paths    *document.Map
	tags     []any
	tagSeen  map[string]bool
	servers  []any
	urlSeen  map[string]bool
	security *document.Map
}

// postmanURL is a request URL split into the parts OAS 3.x keeps apart.
type postmanURL struct {
	origin    string
	segments  []string
	query     []*document.Map
	variables map[string]*document.Map
}

// convertPostmanToOAS3 converts a Postman collection to OAS 3.0.3
func (s *conversion) convertPostmanToOAS3(src *document.Map) (*document.Document, error) {
	pc := &postmanCollection{
		conversion: s,
		vars:       collectionVariables(src),
		paths:      document.NewMap(),
		tagSeen:    make(map[string]bool),
		urlSeen:    make(map[string]bool),
		security:   document.NewMap(),
	}

	items, ok := src.Slice("item")
	if !ok {
		return nil, s.fail("#/item", "collection item must be an array")
	}
	if err := pc.walkItems(items, "#/item", ""); err != nil {
		return nil, err
	}

	dst := document.NewMap()
	dst.Set("openapi", TargetVersion)
	dst.Set("info", pc.convertInfo(src))
	if len(pc.servers) > 0 {
		dst.Set("servers", pc.servers)
	}
	setIfNotEmpty(dst, "tags", pc.tags)
	dst.Set("paths", pc.paths)

	var rootSecurity []any
	if auth, ok := src.Map("auth"); ok {
		rootSecurity = pc.securityFor(auth, "#/auth")
	}
	if pc.security.Len() > 0 {
		dst.Set("components", document.FromPairs(pathutil.SectionSecuritySchemes, pc.security))
	}
	setIfNotEmpty(dst, "security", rootSecurity)
	return document.New(dst), nil
}

func collectionVariables(src *document.Map) map[string]string {
	vars := make(map[string]string)
	list, _ := src.Slice("variable")
	for _, raw := range list {
		v, ok := raw.(*document.Map)
		if !ok {
			continue
		}
		key, _ := v.String("key")
		if key == "" {
			continue
		}
		if value, ok := v.Get("value"); ok && value != nil {
			vars[key] = fmt.Sprint(value)
		}
	}
	return vars
}

func (pc *postmanCollection) convertInfo(src *document.Map) *document.Map {
	info, _ := src.Map("info")
	dst := document.NewMap()
	name, _ := info.String("name")
	dst.Set("title", name)
	if d := descriptionOf(info); d != "" {
		dst.Set("description", d)
	}

	version := ""
	rawVersion, _ := info.Get("version")
	switch v := rawVersion.(type) {
	case string:
		version = v
	case *document.Map:
		major, _ := v.Get("major")
		minor, _ := v.Get("minor")
		patch, _ := v.Get("patch")
		if major != nil {
			version = fmt.Sprintf("%v.%v.%v", major, orZero(minor), orZero(patch))
		}
	}
	if version == "" {
		version = pc.vars["version"]
	}
	if version == "" {
		version = defaultPostmanVersion
		pc.list.Infof("#/info", "Collection declares no version, using %s", defaultPostmanVersion)
	}
	dst.Set("version", version)
	return dst
}

func orZero(v any) any {
	if v == nil {
		return 0
	}
	return v
}

// walkItems converts requests depth first. Folder names become tags; a
// request is tagged with its innermost folder.
func (pc *postmanCollection) walkItems(items []any, ptr, tag string) error {
	for i, raw := range items {
		itemPtr := ptr + "/" + strconv.Itoa(i)
		item, ok := raw.(*document.Map)
		if !ok {
			return pc.fail(itemPtr, "collection item must be an object")
		}
		if children, isFolder := item.Get("item"); isFolder {
			nested, ok := children.([]any)
			if !ok {
				return pc.fail(itemPtr+"/item", "folder item must be an array")
			}
			name, _ := item.String("name")
			pc.addTag(name, descriptionOf(item))
			if err := pc.walkItems(nested, itemPtr+"/item", name); err != nil {
				return err
			}
			continue
		}
		pc.convertRequest(item, itemPtr, tag)
	}
	return nil
}

func (pc *postmanCollection) addTag(name, description string) {
	if name == "" || pc.tagSeen[name] {
		return
	}
	pc.tagSeen[name] = true
	tag := document.FromPairs("name", name)
	if description != "" {
		tag.Set("description", description)
	}
	pc.tags = append(pc.tags, tag)
}

// convertRequest adds one operation for a leaf item.
func (pc *postmanCollection) convertRequest(item *document.Map, ptr, tag string) {
	raw, ok := item.Get("request")
	if !ok {
		pc.warn(ptr, "Item has no request", "The item is skipped")
		return
	}
	request, isMap := raw.(*document.Map)
	if !isMap {
		request = document.NewMap()
		request.Set("url", raw)
	}

	method := "get"
	if m, ok := request.String("method"); ok && m != "" {
		normalized, known := httputil.NormalizeMethod(m)
		if !known {
			pc.warn(ptr+"/request/method", fmt.Sprintf("Unsupported HTTP method %q", m), "The item is skipped")
			return
		}
		method = normalized
	}

	urlRaw, ok := request.Get("url")
	if !ok {
		pc.warn(ptr+"/request", "Request has no url", "The item is skipped")
		return
	}
	u := parsePostmanURL(urlRaw)
	path, pathParams := u.template()
	pc.addServer(u.origin, ptr+"/request/url")

	pathItem := pc.paths.Ensure(path)
	if pathItem.Has(method) {
		pc.warn(ptr, fmt.Sprintf("Duplicate operation %s %s", strings.ToUpper(method), path),
			"Only the first request for each path and method is kept")
		return
	}

	op := document.NewMap()
	if tag != "" {
		op.Set("tags", []any{tag})
	}
	if name, _ := item.String("name"); name != "" {
		op.Set("summary", name)
	}
	if d := descriptionOf(request); d != "" {
		op.Set("description", d)
	}

	var params []any
	for _, name := range pathParams {
		p := document.FromPairs("name", name, "in", "path", "required", true)
		if v, ok := u.variables[name]; ok {
			if d := descriptionOf(v); d != "" {
				p.Set("description", d)
			}
		}
		p.Set("schema", document.FromPairs("type", "string"))
		params = append(params, p)
	}
	for _, q := range u.query {
		if disabled, _ := q.Bool("disabled"); disabled {
			continue
		}
		params = append(params, keyValueParameter(q, "query"))
	}
	contentType := ""
	headers, _ := request.Slice("header")
	for _, raw := range headers {
		h, ok := raw.(*document.Map)
		if !ok {
			continue
		}
		if disabled, _ := h.Bool("disabled"); disabled {
			continue
		}
		key, _ := h.String("key")
		switch strings.ToLower(key) {
		case "content-type":
			contentType, _ = h.String("value")
		case "accept", "authorization":
		default:
			if key != "" {
				params = append(params, keyValueParameter(h, "header"))
			}
		}
	}
	setIfNotEmpty(op, "parameters", params)

	if body, ok := request.Map("body"); ok {
		if rb := pc.convertBody(body, contentType, ptr+"/request/body"); rb != nil {
			op.Set("requestBody", rb)
		}
	}
	op.Set("responses", pc.convertResponses(item))

	if auth, ok := request.Map("auth"); ok {
		if sec := pc.securityFor(auth, ptr+"/request/auth"); sec != nil {
			op.Set("security", sec)
		}
	}
	pathItem.Set(method, op)
}

// keyValueParameter converts a Postman query or header entry.
func keyValueParameter(kv *document.Map, in string) *document.Map {
	key, _ := kv.String("key")
	p := document.FromPairs("name", key, "in", in)
	if d := descriptionOf(kv); d != "" {
		p.Set("description", d)
	}
	schema := document.FromPairs("type", "string")
	if v, ok := kv.Get("value"); ok && v != nil && v != "" {
		schema.Set("example", fmt.Sprint(v))
	}
	p.Set("schema", schema)
	return p
}

// addServer records the resolved origin of a request URL.
func (pc *postmanCollection) addServer(origin, ptr string) {
	if origin == "" {
		return
	}
	variables := document.NewMap()
	url := postmanVarRegex.ReplaceAllStringFunc(origin, func(m string) string {
		name := postmanVarRegex.FindStringSubmatch(m)[1]
		if v, ok := pc.vars[name]; ok {
			return v
		}
		variables.Set(name, document.FromPairs("default", ""))
		return "{" + name + "}"
	})
	url = strings.TrimSuffix(url, "/")
	if pc.urlSeen[url] {
		return
	}
	pc.urlSeen[url] = true
	server := document.FromPairs("url", url)
	if variables.Len() > 0 {
		pc.warn(ptr, fmt.Sprintf("Server URL %q uses undefined variables", origin),
			"They become server variables with an empty default")
		server.Set("variables", variables)
	}
	pc.servers = append(pc.servers, server)
}

func (pc *postmanCollection) convertBody(body *document.Map, contentType, ptr string) *document.Map {
	mode, _ := body.String("mode")
	if disabled, _ := body.Bool("disabled"); disabled {
		return nil
	}
	content := document.NewMap()
	switch mode {
	case "raw":
		raw, _ := body.String("raw")
		if raw == "" {
			return nil
		}
		mt := contentType
		if mt == "" {
			mt = rawMediaType(body, raw)
		}
		content.Set(mt, exampleMediaType(mt, raw))
	case "urlencoded", "formdata":
		mt := mediaTypeForm
		if mode == "formdata" {
			mt = mediaTypeMultipart
		}
		fields, _ := body.Slice(mode)
		properties := document.NewMap()
		for _, raw := range fields {
			f, ok := raw.(*document.Map)
			if !ok {
				continue
			}
			if disabled, _ := f.Bool("disabled"); disabled {
				continue
			}
			key, _ := f.String("key")
			prop := document.FromPairs("type", "string")
			if t, _ := f.String("type"); t == "file" {
				prop.Set("format", "binary")
			} else if v, ok := f.Get("value"); ok && v != nil && v != "" {
				prop.Set("example", fmt.Sprint(v))
			}
			if d := descriptionOf(f); d != "" {
				prop.Set("description", d)
			}
			properties.Set(key, prop)
		}
		content.Set(mt, document.FromPairs("schema", document.FromPairs("type", "object", "properties", properties)))
	case "file":
		content.Set("application/octet-stream", document.FromPairs("schema", document.FromPairs("type", "string", "format", "binary")))
	case "graphql":
		gql, _ := body.Map("graphql")
		example := document.NewMap()
		copyKeys(gql, example, "query", "variables")
		content.Set(mediaTypeJSON, document.FromPairs("schema", inferSchema(example), "example", example))
	default:
		if mode != "" {
			pc.warn(ptr, fmt.Sprintf("Unsupported body mode %q", mode), "The request body is dropped")
		}
		return nil
	}
	return document.FromPairs("content", content)
}

// rawMediaType picks a media type for a raw body from its declared
// language, falling back to sniffing JSON.
func rawMediaType(body *document.Map, raw string) string {
	language := ""
	if opts, ok := body.Map("options"); ok {
		if r, ok := opts.Map("raw"); ok {
			language, _ = r.String("language")
		}
	}
	switch language {
	case "json":
		return mediaTypeJSON
	case "xml":
		return "application/xml"
	case "html":
		return "text/html"
	case "javascript":
		return "application/javascript"
	case "text":
		return "text/plain"
	}
	if json.Valid([]byte(raw)) {
		return mediaTypeJSON
	}
	return "text/plain"
}

// exampleMediaType builds a media type object carrying raw as its example.
// JSON bodies are decoded so the example and inferred schema are structured.
func exampleMediaType(mediaType, raw string) *document.Map {
	var example any = raw
	if strings.Contains(mediaType, "json") {
		if decoded, err := document.Decode([]byte(raw)); err == nil {
			example = decoded
		}
	}
	return document.FromPairs("schema", inferSchema(example), "example", example)
}

func (pc *postmanCollection) convertResponses(item *document.Map) *document.Map {
	responses := document.NewMap()
	saved, _ := item.Slice("response")
	for _, raw := range saved {
		r, ok := raw.(*document.Map)
		if !ok {
			continue
		}
		code := "200"
		if c, ok := r.Get("code"); ok && c != nil {
			code = fmt.Sprint(c)
		}
		if !httputil.ValidateStatusCode(code) {
			code = "default"
		}
		name, _ := r.String("name")
		description := name
		if description == "" {
			description, _ = r.String("status")
		}

		resp, exists := responses.Map(code)
		if !exists {
			resp = document.FromPairs("description", description)
			responses.Set(code, resp)
		}
		body, _ := r.String("body")
		if body == "" {
			continue
		}
		mt := headerValue(r, "content-type")
		if mt == "" {
			mt = mediaTypeJSON
			if !json.Valid([]byte(body)) {
				mt = "text/plain"
			}
		}
		if i := strings.Index(mt, ";"); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
		media := exampleMediaType(mt, body)
		content := resp.Ensure("content")
		existing, ok := content.Map(mt)
		if !ok {
			content.Set(mt, media)
			continue
		}
		// A second saved response for the same status and media type is
		// kept as a named example.
		example, _ := media.Get("example")
		if existing.Has("example") {
			first, _ := existing.Get("example")
			existing.Delete("example")
			existing.Ensure("examples").Set("example1", document.FromPairs("value", first))
		}
		examples := existing.Ensure("examples")
		key := name
		if key == "" || examples.Has(key) {
			key = "example" + strconv.Itoa(examples.Len()+1)
		}
		examples.Set(key, document.FromPairs("value", example))
	}
	if responses.Len() == 0 {
		responses.Set("200", document.FromPairs("description", "Successful response"))
	}
	return responses
}

func headerValue(m *document.Map, name string) string {
	headers, _ := m.Slice("header")
	for _, raw := range headers {
		h, ok := raw.(*document.Map)
		if !ok {
			continue
		}
		if key, _ := h.String("key"); strings.EqualFold(key, name) {
			v, _ := h.String("value")
			return v
		}
	}
	return ""
}

// securityFor registers the security scheme for a Postman auth block and
// returns the matching security requirement. noauth yields an empty
// requirement list; unsupported types yield nil.
func (pc *postmanCollection) securityFor(auth *document.Map, ptr string) []any {
	typ, _ := auth.String("type")
	var name string
	var scheme *document.Map
	switch typ {
	case "noauth":
		return []any{}
	case "bearer":
		name, scheme = "bearerAuth", document.FromPairs("type", "http", "scheme", "bearer")
	case "basic":
		name, scheme = "basicAuth", document.FromPairs("type", "http", "scheme", "basic")
	case "digest":
		name, scheme = "digestAuth", document.FromPairs("type", "http", "scheme", "digest")
	case "apikey":
		key := authEntry(auth, typ, "key")
		if key == "" {
			key = "X-API-Key"
		}
		in := authEntry(auth, typ, "in")
		if in != "query" {
			in = "header"
		}
		name, scheme = "apiKeyAuth", document.FromPairs("type", "apiKey", "name", key, "in", in)
	case "oauth2":
		name, scheme = "oauth2Auth", document.FromPairs("type", "oauth2", "flows", oauth2Flows(auth))
	default:
		pc.warn(ptr, fmt.Sprintf("Unsupported auth type %q", typ), "No security scheme is generated")
		return nil
	}
	if !pc.security.Has(name) {
		pc.security.Set(name, scheme)
	}
	return []any{document.FromPairs(name, []any{})}
}

// authEntry returns the value of key in a Postman auth attribute list such
// as auth.apikey = [{key: "in", value: "header"}].
func authEntry(auth *document.Map, typ, key string) string {
	entries, _ := auth.Slice(typ)
	for _, raw := range entries {
		e, ok := raw.(*document.Map)
		if !ok {
			continue
		}
		if k, _ := e.String("key"); k == key {
			if v, ok := e.Get("value"); ok && v != nil {
				return fmt.Sprint(v)
			}
		}
	}
	return ""
}

func oauth2Flows(auth *document.Map) *document.Map {
	scopes := document.NewMap()
	for _, s := range strings.Fields(authEntry(auth, "oauth2", "scope")) {
		scopes.Set(s, "")
	}
	tokenURL := authEntry(auth, "oauth2", "accessTokenUrl")
	authURL := authEntry(auth, "oauth2", "authUrl")

	flow := document.NewMap()
	flowName := "authorizationCode"
	switch authEntry(auth, "oauth2", "grant_type") {
	case "client_credentials":
		flowName = "clientCredentials"
		flow.Set("tokenUrl", tokenURL)
	case "password_credentials":
		flowName = "password"
		flow.Set("tokenUrl", tokenURL)
	case "implicit":
		flowName = "implicit"
		flow.Set("authorizationUrl", authURL)
	default:
		flow.Set("authorizationUrl", authURL)
		flow.Set("tokenUrl", tokenURL)
	}
	flow.Set("scopes", scopes)
	return document.FromPairs(flowName, flow)
}

// descriptionOf reads a Postman description, which is either a string or
// an object with a content field.
func descriptionOf(m *document.Map) string {
	raw, ok := m.Get("description")
	if !ok {
		return ""
	}
	switch d := raw.(type) {
	case string:
		return d
	case *document.Map:
		content, _ := d.String("content")
		return content
	}
	return ""
}

// parsePostmanURL accepts the string and object forms of a request URL.
func parsePostmanURL(v any) *postmanURL {
	switch u := v.(type) {
	case string:
		return parseRawURL(u)
	case *document.Map:
		host, hasHost := u.Get("host")
		path, hasPath := u.Get("path")
		if !hasHost && !hasPath {
			raw, _ := u.String("raw")
			parsed := parseRawURL(raw)
			parsed.variables = urlVariables(u)
			return parsed
		}
		out := &postmanURL{variables: urlVariables(u)}
		hostStr := joinParts(host, ".")
		if protocol, _ := u.String("protocol"); protocol != "" && hostStr != "" {
			hostStr = protocol + "://" + hostStr
		}
		if port, ok := u.Get("port"); ok && port != nil && hostStr != "" {
			hostStr += ":" + fmt.Sprint(port)
		}
		out.origin = hostStr
		switch p := path.(type) {
		case string:
			out.segments = splitPath(p)
		case []any:
			for _, seg := range p {
				switch sv := seg.(type) {
				case string:
					out.segments = append(out.segments, sv)
				case *document.Map:
					value, _ := sv.String("value")
					out.segments = append(out.segments, value)
				}
			}
		}
		query, _ := u.Slice("query")
		for _, q := range query {
			if qm, ok := q.(*document.Map); ok {
				out.query = append(out.query, qm)
			}
		}
		return out
	}
	return &postmanURL{}
}

func urlVariables(u *document.Map) map[string]*document.Map {
	vars := make(map[string]*document.Map)
	list, _ := u.Slice("variable")
	for _, raw := range list {
		if v, ok := raw.(*document.Map); ok {
			if key, _ := v.String("key"); key != "" {
				vars[key] = v
			}
		}
	}
	return vars
}

// parseRawURL splits "https://api.example.com/pets/:id?limit=10" or
// "{{baseUrl}}/pets" into origin, path segments and query entries.
func parseRawURL(raw string) *postmanURL {
	out := &postmanURL{}
	rest, query, _ := strings.Cut(raw, "?")
	if query != "" {
		for _, pair := range strings.Split(query, "&") {
			if pair == "" {
				continue
			}
			k, v, _ := strings.Cut(pair, "=")
			out.query = append(out.query, document.FromPairs("key", k, "value", v))
		}
	}
	scheme := ""
	if i := strings.Index(rest, "://"); i >= 0 {
		scheme, rest = rest[:i+3], rest[i+3:]
	}
	host, path, _ := strings.Cut(rest, "/")
	if scheme == "" && !strings.Contains(host, "{{") && !strings.Contains(host, ".") && !strings.Contains(host, ":") {
		// No recognizable host; treat everything as path.
		path, host = rest, ""
	}
	if host != "" {
		out.origin = scheme + host
	}
	out.segments = splitPath(path)
	return out
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func joinParts(v any, sep string) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, sep)
	}
	return ""
}

// template builds the OAS path template. ":name" and "{{name}}" segments
// become {name} path parameters.
func (u *postmanURL) template() (string, []string) {
	var params []string
	parts := make([]string, 0, len(u.segments))
	for _, seg := range u.segments {
		switch {
		case strings.HasPrefix(seg, ":") && len(seg) > 1:
			params = append(params, seg[1:])
			parts = append(parts, "{"+seg[1:]+"}")
		case postmanVarRegex.MatchString(seg):
			converted := postmanVarRegex.ReplaceAllStringFunc(seg, func(m string) string {
				name := postmanVarRegex.FindStringSubmatch(m)[1]
				params = append(params, name)
				return "{" + name + "}"
			})
			parts = append(parts, converted)
		default:
			parts = append(parts, seg)
		}
	}
	return "/" + strings.Join(parts, "/"), params
}

// inferSchema derives a schema from an example value.
func inferSchema(v any) *document.Map {
	switch val := v.(type) {
	case *document.Map:
		props := document.NewMap()
		val.Range(func(k string, child any) bool {
			props.Set(k, inferSchema(child))
			return true
		})
		return document.FromPairs("type", "object", "properties", props)
	case []any:
		schema := document.FromPairs("type", "array")
		if len(val) > 0 {
			schema.Set("items", inferSchema(val[0]))
		} else {
			schema.Set("items", document.NewMap())
		}
		return schema
	case bool:
		return document.FromPairs("type", "boolean")
	case int, int64, uint64:
		return document.FromPairs("type", "integer")
	case float64:
		return document.FromPairs("type", "number")
	case nil:
		return document.FromPairs("nullable", true)
	default:
		return document.FromPairs("type", "string")
	}
}
