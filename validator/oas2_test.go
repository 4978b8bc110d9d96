package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsync/docsync/document"
)

const swaggerPetstore = `
swagger: "2.0"
info:
  title: Swagger Petstore
  version: 1.0.0
paths:
  /pet/{petId}:
    get:
      operationId: getPetById
      parameters:
        - name: petId
          in: path
          required: true
          type: integer
      responses:
        "200":
          description: ok
          schema:
            $ref: '#/definitions/Pet'
    post:
      parameters:
        - name: petId
          in: path
          required: true
          type: integer
        - name: body
          in: body
          schema:
            $ref: '#/definitions/Pet'
      responses:
        "405":
          description: invalid
definitions:
  Pet:
    type: object
`

func TestValidateOAS2_Valid(t *testing.T) {
	result, err := Validate(mustParse(t, swaggerPetstore))
	require.NoError(t, err)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Equal(t, document.FormatSwagger, result.Format)
	assert.Equal(t, "2.0", result.Version)
}

func TestValidateOAS2_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		pointer string
		message string
	}{
		{
			name: "body parameter without schema",
			src: `
swagger: "2.0"
info: {title: t, version: v}
paths:
  /pets:
    post:
      parameters:
        - {name: body, in: body}
      responses: {"200": {description: ok}}
`,
			pointer: "#/paths/~1pets/post/parameters/0/schema",
			message: "must have a schema",
		},
		{
			name: "query parameter without type",
			src: `
swagger: "2.0"
info: {title: t, version: v}
paths:
  /pets:
    get:
      parameters:
        - {name: limit, in: query}
      responses: {"200": {description: ok}}
`,
			pointer: "#/paths/~1pets/get/parameters/0/type",
			message: `"limit" must have a type`,
		},
		{
			name: "cookie is not a swagger location",
			src: `
swagger: "2.0"
info: {title: t, version: v}
paths:
  /pets:
    get:
      parameters:
        - {name: session, in: cookie, type: string}
      responses: {"200": {description: ok}}
`,
			pointer: "#/paths/~1pets/get/parameters/0/in",
			message: "formData",
		},
		{
			name: "missing paths",
			src: `
swagger: "2.0"
info: {title: t, version: v}
`,
			pointer: "#/paths",
			message: "paths object",
		},
		{
			name: "missing responses",
			src: `
swagger: "2.0"
info: {title: t, version: v}
paths:
  /pets:
    get: {}
`,
			pointer: "#/paths/~1pets/get/responses",
			message: "responses object",
		},
		{
			name: "unresolved definition",
			src: `
swagger: "2.0"
info: {title: t, version: v}
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
          schema: {$ref: '#/definitions/Pet'}
`,
			pointer: "#/paths/~1pets/get/responses/200/schema",
			message: "Unresolvable $ref",
		},
		{
			name: "wrong swagger version",
			src: `
swagger: "1.2"
info: {title: t, version: v}
paths: {}
`,
			pointer: "#/swagger",
			message: `must be "2.0"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(mustParse(t, tt.src))
			require.NoError(t, err)
			assert.False(t, result.Valid)
			issue, ok := findIssue(result.Errors, tt.pointer, tt.message)
			require.True(t, ok, "no error at %s containing %q; got %v", tt.pointer, tt.message, result.Errors)
			assert.Contains(t, issue.SpecRef, "https://spec.openapis.org/oas/v2.0#")
		})
	}
}
