package walker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/httputil"
	"github.com/docsync/docsync/internal/pathutil"
	"github.com/docsync/docsync/oaserrors"
)

// walk performs the actual traversal.
func (w *Walker) walk(doc *document.Document) error {
	w.stopped = false
	w.err = nil

	paths, err := doc.Paths()
	if err != nil {
		return err
	}
	webhooks, err := doc.Webhooks()
	if err != nil {
		return err
	}
	components, err := doc.Components()
	if err != nil {
		return err
	}

	root := doc.Root
	state := w.state
	if visit(w, w.onDocument, state.buildContext("#"), root) {
		w.extensions(state, "#", root)
		w.walkServers(root, "#", state)
		if paths != nil {
			w.walkPaths(paths, "#/paths", state)
		}
		if webhooks != nil && !w.stopped {
			hooks := state.clone()
			hooks.isWebhook = true
			w.walkPaths(webhooks, "#/webhooks", hooks)
		}
		if components != nil && !w.stopped {
			w.walkComponents(components, state)
		}
	}
	return w.err
}

// extensions reports the x- keys of node.
func (w *Walker) extensions(state *walkState, pointer string, node *document.Map) {
	if w.onExtension == nil || w.stopped {
		return
	}
	var wc *WalkContext
	node.Range(func(key string, value any) bool {
		if strings.HasPrefix(key, "x-") {
			if wc == nil {
				wc = state.buildContext(pointer)
			}
			w.onExtension(wc, key, value)
		}
		return true
	})
}

// ref reports the $ref of node, if any, and whether it had one.
func (w *Walker) ref(state *walkState, pointer string, node *document.Map, nodeType string) bool {
	ref, ok := node.String(document.RefKey)
	if !ok {
		return false
	}
	if w.onRef != nil && !w.stopped {
		wc := state.buildContext(pointer)
		w.handleAction(w.onRef(wc, &RefInfo{Ref: ref, SourcePointer: pointer, NodeType: nodeType}))
	}
	return true
}

// checkContext stops the walk when the user context is done.
func (w *Walker) checkContext(state *walkState) bool {
	if state.ctx == nil {
		return true
	}
	if err := state.ctx.Err(); err != nil {
		w.fail(err)
		return false
	}
	return true
}

func (w *Walker) walkServers(holder *document.Map, base string, state *walkState) {
	servers, ok := holder.Slice("servers")
	if !ok {
		return
	}
	for i, raw := range servers {
		if w.stopped {
			return
		}
		server, ok := raw.(*document.Map)
		if !ok {
			continue
		}
		ptr := base + "/servers/" + strconv.Itoa(i)
		if visit(w, w.onServer, state.buildContext(ptr), server) {
			w.extensions(state, ptr, server)
		}
	}
}

// walkPaths walks a paths or webhooks object.
func (w *Walker) walkPaths(items *document.Map, base string, state *walkState) {
	items.Range(func(key string, raw any) bool {
		ptr := pathutil.Join(base, key)
		if strings.HasPrefix(key, "x-") {
			if w.onExtension != nil {
				w.onExtension(state.buildContext(base), key, raw)
			}
			return !w.stopped
		}
		if !w.checkContext(state) {
			return false
		}
		item, ok := raw.(*document.Map)
		if !ok {
			w.fail(malformed(ptr, "path item", raw))
			return false
		}
		st := state.clone()
		st.pathTemplate = key
		st.name = ""
		w.walkPathItem(item, ptr, st)
		return !w.stopped
	})
}

func (w *Walker) walkPathItem(item *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onPathItem, state.buildContext(ptr), item) {
		return
	}
	w.extensions(state, ptr, item)
	if w.ref(state, ptr, item, NodePathItem) {
		return
	}
	w.walkServers(item, ptr, state)
	w.walkParameters(item, ptr, state)

	item.Range(func(method string, raw any) bool {
		if !httputil.IsMethod(method) {
			return true
		}
		op, ok := raw.(*document.Map)
		if !ok {
			return true
		}
		st := state.clone()
		st.method = method
		st.name = ""
		w.walkOperation(op, pathutil.Join(ptr, method), st)
		return !w.stopped
	})
}

func (w *Walker) walkOperation(op *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onOperation, state.buildContext(ptr), op) {
		return
	}
	w.extensions(state, ptr, op)
	w.walkParameters(op, ptr, state)

	if body, ok := op.Map("requestBody"); ok {
		w.walkRequestBody(body, ptr+"/requestBody", state)
	}
	if responses, ok := op.Map("responses"); ok {
		w.walkResponses(responses, ptr+"/responses", state)
	}
	if callbacks, ok := op.Map("callbacks"); ok {
		callbacks.Range(func(name string, raw any) bool {
			if cb, ok := raw.(*document.Map); ok {
				w.walkCallback(cb, pathutil.Join(ptr, "callbacks", name), state.named(name))
			}
			return !w.stopped
		})
	}
	w.walkServers(op, ptr, state)
}

func (w *Walker) walkParameters(holder *document.Map, base string, state *walkState) {
	params, ok := holder.Slice("parameters")
	if !ok {
		return
	}
	for i, raw := range params {
		if w.stopped {
			return
		}
		if p, ok := raw.(*document.Map); ok {
			w.walkParameter(p, base+"/parameters/"+strconv.Itoa(i), state)
		}
	}
}

func (w *Walker) walkParameter(p *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onParameter, state.buildContext(ptr), p) {
		return
	}
	w.extensions(state, ptr, p)
	if w.ref(state, ptr, p, NodeParameter) {
		return
	}
	if schema, ok := p.Get("schema"); ok {
		w.walkSchema(schema, ptr+"/schema", state, 0)
	}
	w.walkContent(p, ptr, state)
	w.walkExamples(p, ptr, state)
}

func (w *Walker) walkRequestBody(body *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onRequestBody, state.buildContext(ptr), body) {
		return
	}
	w.extensions(state, ptr, body)
	if w.ref(state, ptr, body, NodeRequestBody) {
		return
	}
	w.walkContent(body, ptr, state)
}

func (w *Walker) walkResponses(responses *document.Map, base string, state *walkState) {
	responses.Range(func(code string, raw any) bool {
		if strings.HasPrefix(code, "x-") {
			if w.onExtension != nil {
				w.onExtension(state.buildContext(base), code, raw)
			}
			return !w.stopped
		}
		if resp, ok := raw.(*document.Map); ok {
			st := state.clone()
			st.statusCode = code
			st.name = ""
			w.walkResponse(resp, pathutil.Join(base, code), st)
		}
		return !w.stopped
	})
}

func (w *Walker) walkResponse(resp *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onResponse, state.buildContext(ptr), resp) {
		return
	}
	w.extensions(state, ptr, resp)
	if w.ref(state, ptr, resp, NodeResponse) {
		return
	}
	w.walkHeaders(resp, ptr, state)
	w.walkContent(resp, ptr, state)
	if links, ok := resp.Map("links"); ok {
		links.Range(func(name string, raw any) bool {
			if link, ok := raw.(*document.Map); ok {
				w.walkLink(link, pathutil.Join(ptr, "links", name), state.named(name))
			}
			return !w.stopped
		})
	}
}

func (w *Walker) walkHeaders(holder *document.Map, base string, state *walkState) {
	headers, ok := holder.Map("headers")
	if !ok {
		return
	}
	headers.Range(func(name string, raw any) bool {
		if h, ok := raw.(*document.Map); ok {
			w.walkHeader(h, pathutil.Join(base, "headers", name), state.named(name))
		}
		return !w.stopped
	})
}

func (w *Walker) walkHeader(h *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onHeader, state.buildContext(ptr), h) {
		return
	}
	w.extensions(state, ptr, h)
	if w.ref(state, ptr, h, NodeHeader) {
		return
	}
	if schema, ok := h.Get("schema"); ok {
		w.walkSchema(schema, ptr+"/schema", state, 0)
	}
	w.walkContent(h, ptr, state)
	w.walkExamples(h, ptr, state)
}

func (w *Walker) walkContent(holder *document.Map, base string, state *walkState) {
	content, ok := holder.Map("content")
	if !ok {
		return
	}
	content.Range(func(name string, raw any) bool {
		if mt, ok := raw.(*document.Map); ok {
			w.walkMediaType(mt, pathutil.Join(base, "content", name), state.named(name))
		}
		return !w.stopped
	})
}

func (w *Walker) walkMediaType(mt *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onMediaType, state.buildContext(ptr), mt) {
		return
	}
	w.extensions(state, ptr, mt)
	if schema, ok := mt.Get("schema"); ok {
		w.walkSchema(schema, ptr+"/schema", state, 0)
	}
	w.walkExamples(mt, ptr, state)
	if encoding, ok := mt.Map("encoding"); ok {
		encoding.Range(func(name string, raw any) bool {
			if enc, ok := raw.(*document.Map); ok {
				encPtr := pathutil.Join(ptr, "encoding", name)
				w.extensions(state, encPtr, enc)
				w.walkHeaders(enc, encPtr, state)
			}
			return !w.stopped
		})
	}
}

func (w *Walker) walkExamples(holder *document.Map, base string, state *walkState) {
	examples, ok := holder.Map("examples")
	if !ok {
		return
	}
	examples.Range(func(name string, raw any) bool {
		if ex, ok := raw.(*document.Map); ok {
			w.walkExample(ex, pathutil.Join(base, "examples", name), state.named(name))
		}
		return !w.stopped
	})
}

func (w *Walker) walkExample(ex *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onExample, state.buildContext(ptr), ex) {
		return
	}
	w.extensions(state, ptr, ex)
	w.ref(state, ptr, ex, NodeExample)
}

func (w *Walker) walkLink(link *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onLink, state.buildContext(ptr), link) {
		return
	}
	w.extensions(state, ptr, link)
	if w.ref(state, ptr, link, NodeLink) {
		return
	}
	w.walkServers(link, ptr, state)
}

func (w *Walker) walkCallback(cb *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onCallback, state.buildContext(ptr), cb) {
		return
	}
	w.extensions(state, ptr, cb)
	if w.ref(state, ptr, cb, NodeCallback) {
		return
	}
	cb.Range(func(expr string, raw any) bool {
		if strings.HasPrefix(expr, "x-") {
			return true
		}
		if item, ok := raw.(*document.Map); ok {
			st := state.clone()
			st.pathTemplate = expr
			st.method = ""
			st.statusCode = ""
			st.name = ""
			w.walkPathItem(item, pathutil.Join(ptr, expr), st)
		}
		return !w.stopped
	})
}

func (w *Walker) walkSecurityScheme(scheme *document.Map, ptr string, state *walkState) {
	if !visit(w, w.onSecurityScheme, state.buildContext(ptr), scheme) {
		return
	}
	w.extensions(state, ptr, scheme)
	w.ref(state, ptr, scheme, NodeSecurityScheme)
}

// walkComponents walks every known components section in document order.
func (w *Walker) walkComponents(components *document.Map, state *walkState) {
	st := state.clone()
	st.isComponent = true
	w.extensions(st, "#/components", components)

	components.Range(func(section string, raw any) bool {
		if strings.HasPrefix(section, "x-") {
			return true
		}
		base := pathutil.Join("#/components", section)
		entries, ok := raw.(*document.Map)
		if !ok {
			w.fail(malformed(base, "components section", raw))
			return false
		}
		entries.Range(func(name string, v any) bool {
			node, ok := v.(*document.Map)
			ptr := pathutil.Join(base, name)
			named := st.named(name)
			switch {
			case section == pathutil.SectionSchemas:
				// Boolean schemas are valid in 3.1.
				w.walkSchema(v, ptr, named, 0)
			case !ok:
				return true
			case section == pathutil.SectionResponses:
				w.walkResponse(node, ptr, named)
			case section == pathutil.SectionParameters:
				w.walkParameter(node, ptr, named)
			case section == pathutil.SectionExamples:
				w.walkExample(node, ptr, named)
			case section == pathutil.SectionRequestBodies:
				w.walkRequestBody(node, ptr, named)
			case section == pathutil.SectionHeaders:
				w.walkHeader(node, ptr, named)
			case section == pathutil.SectionSecuritySchemes:
				w.walkSecurityScheme(node, ptr, named)
			case section == pathutil.SectionLinks:
				w.walkLink(node, ptr, named)
			case section == pathutil.SectionCallbacks:
				w.walkCallback(node, ptr, named)
			case section == pathutil.SectionPathItems:
				item := named.clone()
				item.pathTemplate = name
				w.walkPathItem(node, ptr, item)
			}
			return !w.stopped
		})
		return !w.stopped
	})
}

func malformed(pointer, what string, v any) error {
	return &oaserrors.MalformedDocumentError{
		Pointer: pointer,
		Message: fmt.Sprintf("%s must be a mapping, got %T", what, v),
	}
}
