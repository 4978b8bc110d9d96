package converter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/testutil"
	"github.com/docsync/docsync/oaserrors"
)

func convertSwagger(t *testing.T, src string) (*ConversionResult, *document.Map) {
	t.Helper()
	result, err := Convert(testutil.MustParse(t, src))
	require.NoError(t, err)
	return result, result.Document.Root
}

func resolve(t *testing.T, root *document.Map, pointer string) any {
	t.Helper()
	v, err := document.Resolve(root, pointer)
	require.NoError(t, err, pointer)
	return v
}

func TestConvertOAS2_Servers(t *testing.T) {
	_, root := convertSwagger(t, testutil.SwaggerPetstore)
	want := []any{
		document.FromPairs("url", "https://petstore.swagger.io/v2"),
		document.FromPairs("url", "http://petstore.swagger.io/v2"),
	}
	testutil.AssertTreeEqual(t, want, resolve(t, root, "#/servers"))
}

func TestConvertOAS2_NoHost(t *testing.T) {
	result, root := convertSwagger(t, `
swagger: "2.0"
info: {title: t, version: v}
basePath: /api
paths: {}
`)
	testutil.AssertTreeEqual(t, []any{document.FromPairs("url", "/api")}, resolve(t, root, "#/servers"))
	assert.Equal(t, 1, result.InfoCount)
}

func TestConvertOAS2_BodyParameter(t *testing.T) {
	_, root := convertSwagger(t, testutil.SwaggerPetstore)

	want := document.FromPairs(
		"content", document.FromPairs(
			"application/json", document.FromPairs(
				"schema", document.FromPairs("$ref", "#/components/schemas/Pet"),
			),
		),
		"required", true,
	)
	testutil.AssertTreeEqual(t, want, resolve(t, root, "#/paths/~1pet/post/requestBody"))

	op := resolve(t, root, "#/paths/~1pet/post").(*document.Map)
	assert.False(t, op.Has("parameters"), "body parameters leave the parameter list")
}

func TestConvertOAS2_QueryParameters(t *testing.T) {
	_, root := convertSwagger(t, testutil.SwaggerPetstore)

	want := []any{
		document.FromPairs(
			"name", "status",
			"in", "query",
			"style", "form",
			"explode", true,
			"schema", document.FromPairs("type", "array", "items", document.FromPairs("type", "string")),
		),
		document.FromPairs("$ref", "#/components/parameters/Limit"),
	}
	testutil.AssertTreeEqual(t, want, resolve(t, root, "#/paths/~1pet/get/parameters"))
}

func TestConvertOAS2_ResponsesUseProduces(t *testing.T) {
	_, root := convertSwagger(t, testutil.SwaggerPetstore)

	content := resolve(t, root, "#/paths/~1pet/get/responses/200/content").(*document.Map)
	assert.Equal(t, []string{"application/json", "application/xml"}, content.Keys())
	testutil.AssertTreeEqual(t,
		document.FromPairs("$ref", "#/components/schemas/Pet"),
		resolve(t, root, "#/paths/~1pet/get/responses/200/content/application~1xml/schema/items"))

	testutil.AssertTreeEqual(t,
		document.FromPairs("$ref", "#/components/responses/Uploaded"),
		resolve(t, root, "#/paths/~1pet~1{petId}~1uploadImage/post/responses/200"))
}

func TestConvertOAS2_FormData(t *testing.T) {
	_, root := convertSwagger(t, testutil.SwaggerPetstore)

	want := document.FromPairs(
		"content", document.FromPairs(
			"multipart/form-data", document.FromPairs(
				"schema", document.FromPairs(
					"type", "object",
					"properties", document.FromPairs(
						"file", document.FromPairs("type", "string", "format", "binary"),
					),
					"required", []any{"file"},
				),
			),
		),
		"required", true,
	)
	testutil.AssertTreeEqual(t, want, resolve(t, root, "#/paths/~1pet~1{petId}~1uploadImage/post/requestBody"))
}

func TestConvertOAS2_Components(t *testing.T) {
	_, root := convertSwagger(t, testutil.SwaggerPetstore)

	components := resolve(t, root, "#/components").(*document.Map)
	assert.Equal(t, []string{"schemas", "parameters", "responses", "securitySchemes"}, components.Keys())

	tag := resolve(t, root, "#/components/schemas/Pet/properties/tag").(*document.Map)
	assert.False(t, tag.Has("x-nullable"))
	nullable, _ := tag.Bool("nullable")
	assert.True(t, nullable)

	testutil.AssertTreeEqual(t,
		document.FromPairs("name", "limit", "in", "query", "schema", document.FromPairs("type", "integer")),
		resolve(t, root, "#/components/parameters/Limit"))

	testutil.AssertTreeEqual(t,
		document.FromPairs("type", "http", "scheme", "basic"),
		resolve(t, root, "#/components/securitySchemes/basic"))

	flows := resolve(t, root, "#/components/securitySchemes/petstore_auth/flows").(*document.Map)
	assert.Equal(t, []string{"implicit"}, flows.Keys())
	url, _ := flows.Map("implicit")
	authURL, _ := url.String("authorizationUrl")
	assert.Equal(t, "https://petstore.swagger.io/oauth/dialog", authURL)
}

func TestConvertOAS2_GlobalBodyParameter(t *testing.T) {
	_, root := convertSwagger(t, `
swagger: "2.0"
info: {title: t, version: v}
paths:
  /pets:
    post:
      parameters:
        - $ref: '#/parameters/PetBody'
      responses: {"200": {description: ok}}
parameters:
  PetBody:
    name: body
    in: body
    schema: {$ref: '#/definitions/Pet'}
definitions:
  Pet: {type: object}
`)
	testutil.AssertTreeEqual(t,
		document.FromPairs("$ref", "#/components/requestBodies/PetBody"),
		resolve(t, root, "#/paths/~1pets/post/requestBody"))
	testutil.AssertTreeEqual(t,
		document.FromPairs("$ref", "#/components/schemas/Pet"),
		resolve(t, root, "#/components/requestBodies/PetBody/content/application~1json/schema"))
}

func TestConvertOAS2_SchemaRewrites(t *testing.T) {
	_, root := convertSwagger(t, `
swagger: "2.0"
info: {title: t, version: v}
paths: {}
definitions:
  Animal:
    type: object
    discriminator: kind
    properties:
      kind: {type: string}
      photo: {type: file}
      discriminator: {type: string}
    example:
      type: file
`)
	animal := resolve(t, root, "#/components/schemas/Animal").(*document.Map)
	testutil.AssertTreeEqual(t, document.FromPairs("propertyName", "kind"), resolve(t, animal, "#/discriminator"))
	testutil.AssertTreeEqual(t, document.FromPairs("type", "string", "format", "binary"), resolve(t, animal, "#/properties/photo"))
	testutil.AssertTreeEqual(t, document.FromPairs("type", "string"), resolve(t, animal, "#/properties/discriminator"))
	testutil.AssertTreeEqual(t, document.FromPairs("type", "file"), resolve(t, animal, "#/example"))
}

func TestConvertOAS2_CollectionFormats(t *testing.T) {
	result, root := convertSwagger(t, `
swagger: "2.0"
info: {title: t, version: v}
paths:
  /pets/{ids}:
    get:
      parameters:
        - {name: ids, in: path, required: true, type: array, items: {type: string}}
        - {name: a, in: query, type: array, items: {type: string}, collectionFormat: ssv}
        - {name: b, in: query, type: array, items: {type: string}, collectionFormat: pipes}
        - {name: c, in: query, type: array, items: {type: string}, collectionFormat: tsv}
      responses: {"200": {description: ok}}
`)
	params := resolve(t, root, "#/paths/~1pets~1{ids}/get/parameters").([]any)
	require.Len(t, params, 4)
	style := func(i int) string {
		s, _ := params[i].(*document.Map).String("style")
		return s
	}
	assert.Equal(t, "simple", style(0))
	assert.Equal(t, "spaceDelimited", style(1))
	assert.Equal(t, "pipeDelimited", style(2))
	assert.Equal(t, "", style(3))

	require.Equal(t, 1, result.WarningCount)
	var warning ConversionIssue
	for _, issue := range result.Issues {
		if issue.Severity == SeverityWarning {
			warning = issue
		}
	}
	assert.Equal(t, "#/paths/~1pets~1{ids}/get/parameters/3", warning.Pointer)
	assert.Contains(t, warning.Message, "tsv")
}

func TestConvertOAS2_UnresolvableParameter(t *testing.T) {
	_, err := Convert(testutil.MustParse(t, `
swagger: "2.0"
info: {title: t, version: v}
paths:
  /pets:
    get:
      parameters:
        - $ref: '#/parameters/Missing'
      responses: {"200": {description: ok}}
`))
	require.Error(t, err)
	var convErr *oaserrors.ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "#/paths/~1pets/get/parameters/0", convErr.Pointer)
	assert.Equal(t, "swagger", convErr.From)
	assert.Equal(t, "3.0.3", convErr.To)
}
