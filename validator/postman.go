package validator

import (
	"fmt"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/pathutil"
)

// validatePostman checks the structure of a Postman v2.x collection.
func (c *checker) validatePostman(doc *document.Document, version string) {
	c.baseURL = "https://schema.postman.com/collection/json/v2.1.0/draft-07/docs/index.html"
	root := doc.Root

	info, ok := root.Map("info")
	if !ok {
		c.addError("#/info", "Collection must have an info object", "")
	} else {
		if !nonEmptyScalar(info, "name") {
			c.addError("#/info/name", "Collection info must have a name", "")
		}
		if !nonEmptyScalar(info, "schema") {
			c.addError("#/info/schema", "Collection info must declare its schema", "")
		}
	}
	if version != "" && !document.IsSupportedPostman(version) {
		c.addError("#/info/schema", fmt.Sprintf("Unsupported Postman collection version: %s (expected 2.x)", version), "")
	}

	raw, ok := root.Get("item")
	if !ok {
		c.addError("#/item", "Collection must have an item array", "")
		return
	}
	items, ok := raw.([]any)
	if !ok {
		c.addError("#/item", "item must be an array", "")
		return
	}
	c.validatePostmanItems(items, "#/item")
}

func (c *checker) validatePostmanItems(items []any, base string) {
	for i, raw := range items {
		ptr := fmt.Sprintf("%s/%d", base, i)
		item, ok := raw.(*document.Map)
		if !ok {
			c.addError(ptr, "Collection item must be an object", "")
			continue
		}
		if children, isFolder := item.Get("item"); isFolder {
			nested, ok := children.([]any)
			if !ok {
				c.addError(ptr+"/item", "Folder item must be an array", "")
				continue
			}
			c.validatePostmanItems(nested, ptr+"/item")
			continue
		}
		req, ok := item.Get("request")
		if !ok {
			c.addError(ptr, "Collection item must be a folder or have a request", "")
			continue
		}
		switch r := req.(type) {
		case string:
			if r == "" {
				c.addError(ptr+"/request", "Request URL must not be empty", "")
			}
		case *document.Map:
			if !r.Has("url") && c.v.IncludeWarnings {
				c.addWarning(pathutil.Join(ptr, "request"), "Request has no url", "")
			}
		default:
			c.addError(ptr+"/request", "Request must be an object or a URL string", "")
		}
	}
}
