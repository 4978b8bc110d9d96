package normalizer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/testutil"
	"github.com/docsync/docsync/loader"
	"github.com/docsync/docsync/oaserrors"
)

// fakeFetcher serves URLs from memory.
type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(_ context.Context, url string) ([]byte, string, error) {
	body, ok := f[url]
	if !ok {
		return nil, "", fmt.Errorf("HTTP 404 for %s", url)
	}
	return []byte(body), "application/yaml", nil
}

func prepareFS(t *testing.T, files map[string]string, locator string, opts ...Option) (*Result, error) {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	opts = append(opts, WithLoaderOptions(loader.WithFileSystem(fsys)))
	return Prepare(context.Background(), loader.NewSourceDescriptor(locator), opts...)
}

func TestPrepareOpenAPIPassesThrough(t *testing.T) {
	result, err := prepareFS(t, map[string]string{"openapi.yaml": testutil.PetstoreOAS3}, "openapi.yaml")
	require.NoError(t, err)

	assert.Equal(t, document.FormatOpenAPI, result.OriginFormat)
	assert.Equal(t, "3.0.3", result.OriginFormatVersion)
	assert.Equal(t, "3.0.3", result.SpecVersion)
	assert.Equal(t, "1.0.0", result.DefinitionVersion)
	assert.False(t, result.Converted)
	assert.Equal(t, "openapi.yaml", result.Source.Locator)
	assert.Equal(t, 3, result.Stats.PathCount)
	assert.Equal(t, 3, result.Stats.OperationCount)
	testutil.AssertTreeEqual(t, testutil.MustParse(t, testutil.PetstoreOAS3).Root, result.Document.Root)
}

func TestPrepareConvertsSwagger(t *testing.T) {
	result, err := prepareFS(t, map[string]string{"swagger.yaml": testutil.SwaggerPetstore}, "swagger.yaml")
	require.NoError(t, err)

	assert.Equal(t, document.FormatSwagger, result.OriginFormat)
	assert.Equal(t, "2.0", result.OriginFormatVersion)
	assert.Equal(t, "3.0.3", result.SpecVersion)
	assert.Equal(t, "1.0.0", result.DefinitionVersion)
	assert.True(t, result.Converted)

	schemas, err := document.Resolve(result.Document.Root, "#/components/schemas/Pet")
	require.NoError(t, err)
	assert.NotNil(t, schemas)
}

func TestPrepareConvertsPostman(t *testing.T) {
	result, err := prepareFS(t, map[string]string{"collection.json": testutil.PostmanCollection}, "collection.json")
	require.NoError(t, err)

	assert.Equal(t, document.FormatPostman, result.OriginFormat)
	assert.Equal(t, "2.1.0", result.OriginFormatVersion)
	assert.Equal(t, "3.0.3", result.SpecVersion)
	assert.Equal(t, "Pet Collection", result.Document.Title())
	assert.True(t, result.Converted)
}

func TestPrepareRenameTitle(t *testing.T) {
	result, err := prepareFS(t, map[string]string{"openapi.yaml": testutil.PetstoreOAS3}, "openapi.yaml",
		WithRenameTitle("Renamed"))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", result.Document.Title())
}

func TestPrepareBundle(t *testing.T) {
	files := map[string]string{
		"api/openapi.yaml": `openapi: 3.1.0
info:
  title: Pets
  version: 2.0.0
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: 'schemas/pet.yaml'
`,
		"api/schemas/pet.yaml": "type: object\nproperties:\n  name: {type: string}\n",
	}

	result, err := prepareFS(t, files, "api/openapi.yaml", WithBundle(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"#/components/schemas/pet"}, result.BundledComponents)
	assert.Equal(t, "3.1.0", result.SpecVersion)
	assert.Equal(t, 1, result.Stats.SchemaCount)

	// Without bundling the external ref stays.
	result, err = prepareFS(t, files, "api/openapi.yaml")
	require.NoError(t, err)
	ref, err := document.Resolve(result.Document.Root, "#/paths/~1pets/get/responses/200/content/application~1json/schema/$ref")
	require.NoError(t, err)
	assert.Equal(t, "schemas/pet.yaml", ref)
}

func TestPrepareBundleFailure(t *testing.T) {
	files := map[string]string{
		"openapi.yaml": `openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Pet: {$ref: 'missing.yaml#/Pet'}
`,
	}
	_, err := prepareFS(t, files, "openapi.yaml", WithBundle(true))
	var bundleErr *oaserrors.BundleError
	require.ErrorAs(t, err, &bundleErr)
	assert.Equal(t, "missing.yaml#/Pet", bundleErr.Ref)
	assert.Equal(t, "#/components/schemas/Pet", bundleErr.Pointer)
}

func TestPrepareFromURL(t *testing.T) {
	fetcher := fakeFetcher{"https://example.com/openapi.yaml": testutil.PetstoreOAS3}
	result, err := Prepare(context.Background(), loader.NewSourceDescriptor("https://example.com/openapi.yaml"),
		WithFetcher(fetcher))
	require.NoError(t, err)
	assert.Equal(t, loader.OriginURL, result.Source.OriginKind)
	assert.Equal(t, "Petstore", result.Document.Title())

	_, err = Prepare(context.Background(), loader.NewSourceDescriptor("https://example.com/missing.yaml"),
		WithFetcher(fetcher))
	assert.True(t, errors.Is(err, oaserrors.ErrLoad))
}

func TestPrepareLoadErrors(t *testing.T) {
	files := map[string]string{
		"package.json": `{"name": "not-an-api", "version": "1.0.0"}`,
		"broken.yaml":  "openapi: [unclosed\n",
	}

	tests := []struct {
		name    string
		locator string
		message string
	}{
		{"missing file", "nope.yaml", "unreadable file"},
		{"no marker", "package.json", "unsupported definition"},
		{"bad syntax", "broken.yaml", "unparsable syntax"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := prepareFS(t, files, tt.locator)
			var loadErr *oaserrors.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.locator, loadErr.Locator)
			assert.Contains(t, loadErr.Error(), tt.message)
		})
	}
}

func TestPrepareValidationCollectsEveryIssue(t *testing.T) {
	src := `openapi: 3.0.3
info:
  version: 1.0.0
paths:
  pets:
    get:
      responses:
        "200":
          description: ok
  /orders:
    get:
      parameters:
        - name: id
          in: cookie-jar
      responses:
        "200":
          description: ok
`
	_, err := prepareFS(t, map[string]string{"openapi.yaml": src}, "openapi.yaml")
	var verr *oaserrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "openapi", verr.Format)
	assert.Equal(t, "openapi.yaml", verr.Locator)
	require.Len(t, verr.Issues, 3)

	var pointers []string
	for _, issue := range verr.Issues {
		pointers = append(pointers, issue.Pointer)
	}
	assert.Contains(t, pointers, "#/info/title")
	assert.Contains(t, pointers, "#/paths/pets")
	assert.Contains(t, pointers, "#/paths/~1orders/get/parameters/0/in")
}

func TestPrepareCollectsWarnings(t *testing.T) {
	src := `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /pets/{id}:
    get:
      responses:
        "200":
          description: ok
`
	result, err := prepareFS(t, map[string]string{"openapi.yaml": src}, "openapi.yaml")
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "{id}")
}

func TestOptionValidation(t *testing.T) {
	_, err := Prepare(context.Background(), loader.NewSourceDescriptor("x.yaml"), WithMaxFileSize(0))
	assert.Error(t, err)
	_, err = Prepare(context.Background(), loader.NewSourceDescriptor("x.yaml"), WithFetcher(nil))
	assert.Error(t, err)
}

func TestPrepareMaxFileSize(t *testing.T) {
	_, err := prepareFS(t, map[string]string{"openapi.yaml": testutil.PetstoreOAS3}, "openapi.yaml",
		WithMaxFileSize(64))
	var loadErr *oaserrors.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "exceeds limit")
}

func TestPrepareBundleInlinesExternalPathItems(t *testing.T) {
	files := map[string]string{
		"openapi.yaml": `openapi: 3.0.3
info:
  title: Shop
  version: 1.0.0
paths:
  /store:
    $ref: './store.yaml'
`,
		"store.yaml": `get:
  tags: [store]
  responses:
    "200":
      description: ok
      content:
        application/json:
          schema:
            $ref: 'order.yaml'
`,
		"order.yaml": "type: object\n",
	}

	result, err := prepareFS(t, files, "openapi.yaml", WithBundle(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"#/components/schemas/order"}, result.BundledComponents)
	assert.Equal(t, 1, result.Stats.OperationCount)

	components, err := result.Document.Components()
	require.NoError(t, err)
	assert.Equal(t, []string{"schemas"}, components.Keys())

	paths, err := result.Document.Paths()
	require.NoError(t, err)
	ops := document.Operations(paths)
	require.Len(t, ops, 1)
	assert.Equal(t, "/store", ops[0].Path)
	assert.Equal(t, "get", ops[0].Method)
}
