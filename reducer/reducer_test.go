package reducer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/testutil"
	"github.com/docsync/docsync/oaserrors"
)

const petDoc = `openapi: 3.1.0
info:
  title: Pet
  version: 1.0.0
paths:
  /pet:
    get:
      operationId: getPet
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
    post:
      operationId: addPet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/NewPet'
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
  /owner:
    get:
      responses:
        "200":
          description: ok
webhooks:
  petAdded:
    post:
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Event'
      responses:
        "200":
          description: ok
components:
  schemas:
    Pet:
      type: object
      properties:
        id: {type: integer}
    NewPet:
      type: object
      properties:
        name: {type: string}
    Event:
      type: object
`

func mustCriterion(t *testing.T, opts ...Option) *Criterion {
	t.Helper()
	c, err := NewCriterion(opts...)
	require.NoError(t, err)
	return c
}

func operationIDs(t *testing.T, doc *document.Document) []string {
	t.Helper()
	paths, err := doc.Paths()
	require.NoError(t, err)
	var ids []string
	for _, op := range document.Operations(paths) {
		id, _ := op.Node.String("operationId")
		ids = append(ids, id)
	}
	return ids
}

func componentNames(doc *document.Document, section string) []string {
	components, ok := doc.Root.Map("components")
	if !ok {
		return nil
	}
	entries, ok := components.Map(section)
	if !ok {
		return nil
	}
	return entries.Keys()
}

func TestReduceByTag(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)

	out, err := Reduce(doc, mustCriterion(t, WithTags("pets")))
	require.NoError(t, err)

	assert.Equal(t, []string{"listPets", "orderPet"}, operationIDs(t, out))
	assert.ElementsMatch(t, []string{"Pet", "Category", "Pets", "Order"}, componentNames(out, "schemas"))
	assert.Equal(t, []string{"PetId"}, componentNames(out, "parameters"))
	assert.Equal(t, []string{"petstore_auth"}, componentNames(out, "securitySchemes"))

	// orderPet is also tagged store, so both root tags stay
	tags, ok := out.Root.Slice("tags")
	require.True(t, ok)
	assert.Len(t, tags, 2)

	// the input is untouched
	assert.Equal(t, []string{"listPets", "getInventory", "orderPet"}, operationIDs(t, doc))
	assert.Contains(t, componentNames(doc, "schemas"), "Inventory")
}

func TestReduceByTagStore(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)

	out, err := Reduce(doc, mustCriterion(t, WithTags("STORE")))
	require.NoError(t, err)

	assert.Equal(t, []string{"getInventory", "orderPet"}, operationIDs(t, out))
	// Pets is only used by listPets; Pet survives through Order
	assert.ElementsMatch(t, []string{"Pet", "Category", "Inventory", "Order"}, componentNames(out, "schemas"))
}

func TestReduceByTagDropsUnusedRootTags(t *testing.T) {
	doc := testutil.MustParse(t, `openapi: 3.0.3
info: {title: T, version: "1"}
tags:
  - name: a
  - name: b
paths:
  /a:
    get:
      tags: [a]
      responses: {"200": {description: ok}}
  /b:
    get:
      tags: [b]
      responses: {"200": {description: ok}}
`)

	out, err := Reduce(doc, mustCriterion(t, WithTags("a")))
	require.NoError(t, err)

	tags, ok := out.Root.Slice("tags")
	require.True(t, ok)
	require.Len(t, tags, 1)
	name, _ := tags[0].(*document.Map).String("name")
	assert.Equal(t, "a", name)

	paths, err := out.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a"}, paths.Keys())
	assert.False(t, out.Root.Has("components"))
}

func TestReduceByTagFiltersWebhooks(t *testing.T) {
	doc := testutil.MustParse(t, `openapi: 3.1.0
info: {title: T, version: "1"}
paths:
  /a:
    get:
      tags: [a]
      responses: {"200": {description: ok}}
webhooks:
  keep:
    post:
      tags: [a]
      requestBody:
        content:
          application/json:
            schema: {$ref: '#/components/schemas/Kept'}
  drop:
    post:
      tags: [b]
      requestBody:
        content:
          application/json:
            schema: {$ref: '#/components/schemas/Dropped'}
components:
  schemas:
    Kept: {type: object}
    Dropped: {type: object}
`)

	out, err := Reduce(doc, mustCriterion(t, WithTags("a")))
	require.NoError(t, err)

	webhooks, err := out.Webhooks()
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, webhooks.Keys())
	assert.Equal(t, []string{"Kept"}, componentNames(out, "schemas"))
}

func TestReduceByPathAndMethod(t *testing.T) {
	doc := testutil.MustParse(t, petDoc)

	out, err := Reduce(doc, mustCriterion(t, WithPath("/pet", "get")))
	require.NoError(t, err)

	paths, err := out.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"/pet"}, paths.Keys())
	item, _ := paths.Map("/pet")
	assert.Equal(t, []string{"get"}, item.Keys())

	assert.Equal(t, []string{"Pet"}, componentNames(out, "schemas"))
	assert.False(t, out.Root.Has("webhooks"))
}

func TestReduceByPathAllMethods(t *testing.T) {
	doc := testutil.MustParse(t, petDoc)

	out, err := Reduce(doc, mustCriterion(t, WithPath("/PET")))
	require.NoError(t, err)

	assert.Equal(t, []string{"getPet", "addPet"}, operationIDs(t, out))
	assert.Equal(t, []string{"Pet", "NewPet"}, componentNames(out, "schemas"))
}

func TestReduceByMultiplePaths(t *testing.T) {
	doc := testutil.MustParse(t, petDoc)

	out, err := Reduce(doc, mustCriterion(t, WithPath("/pet", "POST"), WithPath("/owner")))
	require.NoError(t, err)

	paths, err := out.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"/pet", "/owner"}, paths.Keys())
	assert.Equal(t, []string{"Pet", "NewPet"}, componentNames(out, "schemas"))
}

func TestReduceEmptyResult(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		opts    []Option
		message string
	}{
		{
			name:    "absent tag",
			doc:     testutil.PetstoreOAS3,
			opts:    []Option{WithTags("users")},
			message: "no operations are tagged users",
		},
		{
			name:    "path not found",
			doc:     petDoc,
			opts:    []Option{WithPath("/users")},
			message: "path not found: /users",
		},
		{
			name:    "no matching method",
			doc:     petDoc,
			opts:    []Option{WithPath("/pet", "delete")},
			message: "path found but no matching method: /pet (delete)",
		},
		{
			name:    "both",
			doc:     petDoc,
			opts:    []Option{WithPath("/users"), WithPath("/owner", "put")},
			message: "path not found: /users; path found but no matching method: /owner (put)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Reduce(testutil.MustParse(t, tt.doc), mustCriterion(t, tt.opts...))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, oaserrors.ErrEmptyResult))

			var emptyErr *oaserrors.EmptyResultError
			require.True(t, errors.As(err, &emptyErr))
			assert.Equal(t, tt.message, emptyErr.Message)
		})
	}
}

func TestReduceTransitiveAndDiscriminatorRefs(t *testing.T) {
	doc := testutil.MustParse(t, `openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /a:
    get:
      tags: [a]
      responses:
        "200":
          $ref: '#/components/responses/Shape'
  /b:
    get:
      tags: [b]
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema: {$ref: '#/components/schemas/Unused'}
components:
  responses:
    Shape:
      description: ok
      content:
        application/json:
          schema: {$ref: '#/components/schemas/Shape'}
  schemas:
    Shape:
      oneOf:
        - $ref: '#/components/schemas/Circle'
      discriminator:
        propertyName: kind
        mapping:
          circle: '#/components/schemas/Circle'
          square: Square
    Circle:
      type: object
      properties:
        self: {$ref: '#/components/schemas/Circle'}
    Square: {type: object}
    Unused: {type: object}
`)

	out, err := Reduce(doc, mustCriterion(t, WithTags("a")))
	require.NoError(t, err)

	assert.Equal(t, []string{"Shape"}, componentNames(out, "responses"))
	assert.Equal(t, []string{"Shape", "Circle", "Square"}, componentNames(out, "schemas"))
}

func TestReduceKeepsRootSecuritySchemes(t *testing.T) {
	doc := testutil.MustParse(t, `openapi: 3.0.3
info: {title: T, version: "1"}
security:
  - global: []
paths:
  /a:
    get:
      tags: [a]
      responses: {"200": {description: ok}}
components:
  securitySchemes:
    global: {type: http, scheme: bearer}
    other: {type: apiKey, name: k, in: header}
`)

	out, err := Reduce(doc, mustCriterion(t, WithTags("a")))
	require.NoError(t, err)
	assert.Equal(t, []string{"global"}, componentNames(out, "securitySchemes"))
}

func TestReduceErrors(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)

	_, err := Reduce(nil, mustCriterion(t, WithTags("pets")))
	assert.Error(t, err)

	_, err = Reduce(doc, nil)
	assert.True(t, errors.Is(err, oaserrors.ErrUsage))

	swagger := testutil.MustParse(t, testutil.SwaggerPetstore)
	_, err = Reduce(swagger, mustCriterion(t, WithTags("pet")))
	assert.True(t, errors.Is(err, oaserrors.ErrMalformedDocument))

	malformed := testutil.MustParse(t, "openapi: 3.0.3\ninfo: {title: T, version: '1'}\npaths: []\n")
	_, err = Reduce(malformed, mustCriterion(t, WithTags("pets")))
	assert.True(t, errors.Is(err, oaserrors.ErrMalformedDocument))
}

func TestNewCriterion(t *testing.T) {
	c := mustCriterion(t, WithTags("pets", " store "))
	assert.Equal(t, ModeTags, c.Mode())
	assert.Equal(t, []string{"pets", "store"}, c.Tags())

	c = mustCriterion(t, WithPath("/pet", "GET", "post"), WithPath("/owner"))
	assert.Equal(t, ModePaths, c.Mode())
	assert.Equal(t, []PathSelection{
		{Path: "/pet", Methods: []string{"get", "post"}},
		{Path: "/owner"},
	}, c.Selections())
	assert.Equal(t, "paths", c.Mode().String())
}

func TestNewCriterionUsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		option string
	}{
		{name: "conflicting", opts: []Option{WithTags("pets"), WithPath("/pet")}, option: "tag"},
		{name: "empty", opts: nil, option: ""},
		{name: "blank tag", opts: []Option{WithTags(" ")}, option: "tag"},
		{name: "blank path", opts: []Option{WithPath("")}, option: "path"},
		{name: "bad method", opts: []Option{WithPath("/pet", "fetch")}, option: "method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCriterion(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, c)

			var usageErr *oaserrors.UsageError
			require.True(t, errors.As(err, &usageErr))
			assert.Equal(t, tt.option, usageErr.Option)
		})
	}
}

const pathItemRefDoc = `openapi: 3.1.0
info:
  title: Shop
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      tags: [pets]
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
  /store:
    $ref: '#/components/pathItems/Store'
components:
  pathItems:
    Store:
      get:
        operationId: getOrder
        tags: [store]
        responses:
          "200":
            description: ok
            content:
              application/json:
                schema:
                  $ref: '#/components/schemas/Order'
  schemas:
    Pet:
      type: object
    Order:
      type: object
`

func TestReduceFollowsPathItemRefs(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		ids     []string
		paths   []string
		schemas []string
	}{
		{
			name:    "tag on inline item",
			opts:    []Option{WithTags("pets")},
			ids:     []string{"listPets"},
			paths:   []string{"/pets"},
			schemas: []string{"Pet"},
		},
		{
			name:    "tag on referenced item",
			opts:    []Option{WithTags("store")},
			ids:     []string{"getOrder"},
			paths:   []string{"/store"},
			schemas: []string{"Order"},
		},
		{
			name:    "path and method on referenced item",
			opts:    []Option{WithPath("/store", "get")},
			ids:     []string{"getOrder"},
			paths:   []string{"/store"},
			schemas: []string{"Order"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testutil.MustParse(t, pathItemRefDoc)

			out, err := Reduce(doc, mustCriterion(t, tt.opts...))
			require.NoError(t, err)

			assert.Equal(t, tt.ids, operationIDs(t, out))
			paths, err := out.Paths()
			require.NoError(t, err)
			assert.Equal(t, tt.paths, paths.Keys())
			assert.Equal(t, tt.schemas, componentNames(out, "schemas"))
			assert.Empty(t, componentNames(out, "pathItems"))

			// the input still references the component
			inPaths, _ := doc.Root.Map("paths")
			item, _ := inPaths.Map("/store")
			assert.True(t, item.Has(document.RefKey))
		})
	}
}

func TestReduceReferencedPathItemWithoutMethod(t *testing.T) {
	doc := testutil.MustParse(t, pathItemRefDoc)

	_, err := Reduce(doc, mustCriterion(t, WithPath("/store", "delete")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrEmptyResult))
	assert.Contains(t, err.Error(), "path found but no matching method: /store (delete)")
}
