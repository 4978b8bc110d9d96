package analyzer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/docsync/internal/testutil"
	"github.com/docsync/docsync/oaserrors"
)

const featureDoc = `openapi: 3.1.0
info:
  title: Features
  version: 1.0.0
x-readme:
  explorer-enabled: false
  code-samples: []
servers:
  - url: https://{region}.example.com
    variables:
      region:
        default: us
paths:
  /pets:
    get:
      x-proxy-enabled: false
      parameters:
        - name: ids
          in: query
          style: form
          explode: false
          schema:
            type: array
            items: {type: string}
      responses:
        "200":
          description: ok
          content:
            application/xml:
              schema:
                $ref: '#/components/schemas/Pet'
          links:
            next:
              operationId: listPets
    post:
      callbacks:
        created:
          '{$request.body#/callbackUrl}':
            post:
              responses:
                "204":
                  description: ack
      responses:
        "201":
          description: created
webhooks:
  petAdded:
    post:
      responses:
        "200":
          description: ok
components:
  schemas:
    Pet:
      x-readme-ref-name: Animal
      oneOf:
        - $ref: '#/components/schemas/Cat'
        - $ref: '#/components/schemas/Dog'
      discriminator:
        propertyName: kind
      xml:
        name: pet
    Cat:
      type: object
      additionalProperties: false
    Dog:
      type: object
      additionalProperties: true
  securitySchemes:
    key:
      type: apiKey
      name: api_key
      in: header
      x-default: secret
`

func TestAnalyzeCatalogCompleteness(t *testing.T) {
	result, err := Analyze(testutil.MustParse(t, testutil.PetstoreOAS3))
	require.NoError(t, err)

	seen := map[string]int{}
	for key := range result.OpenAPI {
		seen[key]++
	}
	for key := range result.Platform {
		seen[key]++
	}
	for _, key := range SupportedFeatureKeys() {
		if key == ReadMeKey {
			continue
		}
		assert.Equal(t, 1, seen[key], key)
	}
	assert.Len(t, seen, len(SupportedFeatureKeys())-1)

	callbacks := result.OpenAPI[FeatureCallbacks]
	assert.False(t, callbacks.Present)
	assert.NotNil(t, callbacks.Locations)
	assert.Empty(t, callbacks.Locations)
	assert.NotEmpty(t, callbacks.Description)

	for key, rec := range result.Platform {
		assert.False(t, rec.Present, key)
	}
}

func TestAnalyzePetstore(t *testing.T) {
	result, err := Analyze(testutil.MustParse(t, testutil.PetstoreOAS3))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", result.SpecVersion)
	assert.Equal(t, "3.0", result.MinorVersion())
	assert.Equal(t, []string{"#/components/schemas/Inventory/additionalProperties"},
		result.OpenAPI[FeatureAdditionalProperties].Locations)
	assert.Equal(t, []string{"#/paths/~1pets~1{petId}~1orders/parameters"},
		result.OpenAPI[FeatureCommonParameters].Locations)
	assert.False(t, result.OpenAPI[FeatureCircularRefs].Present)

	assert.Equal(t, 3, *result.General[StatPaths].Count)
	assert.Equal(t, 3, *result.General[StatOperations].Count)
	assert.Equal(t, 5, *result.General[StatSchemas].Count)
	assert.Equal(t, []string{"https://petstore.example.com/v1"}, result.General[StatServers].Values)
	assert.Equal(t, []string{"application/json"}, result.General[StatMediaTypes].Values)
	assert.Equal(t, []string{"apiKey", "oauth2"}, result.General[StatSecurityTypes].Values)
	assert.True(t, result.General[StatPaths].IsCount())
	assert.False(t, result.General[StatServers].IsCount())
}

func TestAnalyzeFeatureLocations(t *testing.T) {
	result, err := Analyze(testutil.MustParse(t, featureDoc))
	require.NoError(t, err)

	tests := []struct {
		key  string
		want []string
	}{
		{FeatureAdditionalProperties, []string{"#/components/schemas/Dog/additionalProperties"}},
		{FeatureCallbacks, []string{"#/paths/~1pets/post/callbacks/created"}},
		{FeatureCommonParameters, []string{}},
		{FeatureDiscriminators, []string{"#/components/schemas/Pet/discriminator"}},
		{FeatureLinks, []string{"#/paths/~1pets/get/responses/200/links/next"}},
		{FeaturePolymorphism, []string{"#/components/schemas/Pet/oneOf"}},
		{FeatureServerVariables, []string{"#/servers/0/variables"}},
		{FeatureStyle, []string{"#/paths/~1pets/get/parameters/0/style"}},
		{FeatureWebhooks, []string{"#/webhooks/petAdded"}},
		{FeatureXML, []string{"#/components/schemas/Pet/xml"}},
		{ExtensionDefault, []string{"#/components/securitySchemes/key/x-default"}},
		{ExtensionCodeSamples, []string{"#/x-readme/code-samples"}},
		{ExtensionExplorerEnabled, []string{"#/x-readme/explorer-enabled"}},
		{ExtensionHeaders, []string{}},
		{ExtensionProxyEnabled, []string{"#/paths/~1pets/get/x-proxy-enabled"}},
		{ExtensionSamplesLanguages, []string{}},
		{ExtensionReadmeRefName, []string{"#/components/schemas/Pet/x-readme-ref-name"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rec, ok := result.Feature(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Locations)
			assert.Equal(t, len(tt.want) > 0, rec.Present)
		})
	}

	assert.Equal(t, 1, *result.General[StatPaths].Count)
	assert.Equal(t, 2, *result.General[StatOperations].Count)
	assert.Equal(t, []string{"https://{region}.example.com"}, result.General[StatServers].Values)
	assert.Equal(t, []string{"application/xml"}, result.General[StatMediaTypes].Values)
}

func TestAnalyzeSelfReference(t *testing.T) {
	doc := testutil.MustParse(t, `openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Node:
      type: object
      properties:
        child:
          $ref: '#/components/schemas/Node'
`)
	result, err := Analyze(doc)
	require.NoError(t, err)

	circular := result.OpenAPI[FeatureCircularRefs]
	assert.True(t, circular.Present)
	assert.Equal(t, []string{"#/components/schemas/Node/properties/child"}, circular.Locations)
}

func TestAnalyzeIndirectCycle(t *testing.T) {
	doc := testutil.MustParse(t, `openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Owner:
      properties:
        pets:
          type: array
          items:
            $ref: '#/components/schemas/Pet'
    Pet:
      properties:
        owner:
          $ref: '#/components/schemas/Owner'
`)
	result, err := Analyze(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"#/components/schemas/Pet/properties/owner"},
		result.OpenAPI[FeatureCircularRefs].Locations)
}

func TestAnalyzeDiamondIsNotCircular(t *testing.T) {
	doc := testutil.MustParse(t, `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /a:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Root'
components:
  schemas:
    Root:
      properties:
        left: {$ref: '#/components/schemas/Left'}
        right: {$ref: '#/components/schemas/Right'}
    Left:
      properties:
        shared: {$ref: '#/components/schemas/Shared'}
    Right:
      properties:
        shared: {$ref: '#/components/schemas/Shared'}
    Shared:
      type: string
`)
	result, err := Analyze(doc)
	require.NoError(t, err)
	circular := result.OpenAPI[FeatureCircularRefs]
	assert.False(t, circular.Present)
	assert.Empty(t, circular.Locations)
}

func TestAnalyzeMalformed(t *testing.T) {
	_, err := Analyze(testutil.MustParse(t, "openapi: 3.0.3\ninfo: {title: t, version: '1'}\npaths: [1]\n"))
	var malformed *oaserrors.MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "#/paths", malformed.Pointer)

	_, err = Analyze(testutil.MustParse(t, testutil.SwaggerPetstore))
	assert.True(t, errors.Is(err, oaserrors.ErrMalformedDocument))

	_, err = Analyze(nil)
	assert.Error(t, err)
}

func TestAnalyzeDoesNotModifyDocument(t *testing.T) {
	doc := testutil.MustParse(t, featureDoc)
	before := doc.Clone()
	_, err := Analyze(doc)
	require.NoError(t, err)
	testutil.AssertTreeEqual(t, before.Root, doc.Root)
}

func TestSupportedFeatureKeys(t *testing.T) {
	keys := SupportedFeatureKeys()
	assert.Len(t, keys, len(openAPICatalog)+len(platformCatalog)+1)
	assert.Equal(t, FeatureAdditionalProperties, keys[0])
	assert.Equal(t, ReadMeKey, keys[len(keys)-1])
}

func TestValidateFeatureKeys(t *testing.T) {
	keys, err := ValidateFeatureKeys([]string{"webhooks", "readme", "x-default", "webhooks"})
	require.NoError(t, err)
	assert.Equal(t, append([]string{"webhooks"}, PlatformFeatureKeys()...), keys)

	_, err = ValidateFeatureKeys([]string{"bogus", "style", "nope"})
	var usage *oaserrors.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, "bogus, nope", usage.Value)
	assert.Contains(t, err.Error(), "bogus")
	assert.Contains(t, err.Error(), "nope")
}

func TestDocsURLFor(t *testing.T) {
	webhooks := openAPICatalog[9]
	require.Equal(t, FeatureWebhooks, webhooks.key)

	_, ok := webhooks.docs.For("3.0")
	assert.False(t, ok)
	url, ok := webhooks.docs.For("3.1")
	assert.True(t, ok)
	assert.Contains(t, url, "v3.1.0")

	url, ok = DocsURL{URL: "https://example.com"}.For("3.0")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", url)

	url, ok = DocsURL{}.For("3.1")
	assert.True(t, ok)
	assert.Empty(t, url)
}

func TestAnalyzeCountsReferencedPathItems(t *testing.T) {
	doc := testutil.MustParse(t, `openapi: 3.1.0
info: {title: t, version: "1"}
paths:
  /pets:
    get:
      responses:
        "200": {description: ok}
  /store:
    $ref: '#/components/pathItems/Store'
  /orders:
    $ref: '#/components/pathItems/Missing'
  x-internal: true
components:
  pathItems:
    Store:
      get:
        responses:
          "200": {description: ok}
      post:
        responses:
          "201": {description: created}
`)
	result, err := Analyze(doc)
	require.NoError(t, err)

	assert.Equal(t, 3, *result.General[StatPaths].Count)
	assert.Equal(t, 3, *result.General[StatOperations].Count)
}

func TestStatisticJSON(t *testing.T) {
	n := 2
	tests := []struct {
		name string
		stat Statistic
		want string
	}{
		{name: "count", stat: Statistic{Name: "Paths", Count: &n}, want: `{"name":"Paths","count":2}`},
		{name: "zero count", stat: Statistic{Name: "Paths", Count: new(int)}, want: `{"name":"Paths","count":0}`},
		{name: "values", stat: Statistic{Name: "Servers", Values: []string{"a"}}, want: `{"name":"Servers","values":["a"]}`},
		{name: "empty values", stat: Statistic{Name: "Servers", Values: []string{}}, want: `{"name":"Servers","values":[]}`},
		{name: "nil values", stat: Statistic{Name: "Servers"}, want: `{"name":"Servers","values":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.stat)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
