package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listOperationsTestSpec = `openapi: "3.1.0"
info:
  title: List Ops Test
  version: "1.0.0"
paths:
  /pets:
    get:
      summary: List all pets
      operationId: listPets
      tags:
        - pets
      responses:
        "200":
          description: OK
    post:
      summary: Create a pet
      operationId: createPet
      tags:
        - pets
      callbacks:
        onCreated:
          "{$request.body#/callbackUrl}":
            post:
              operationId: createdCallback
              responses:
                "200":
                  description: OK
      responses:
        "201":
          description: Created
  /pets/{petId}:
    get:
      summary: Get a pet by ID
      operationId: getPet
      tags:
        - pets
      deprecated: true
      responses:
        "200":
          description: OK
    delete:
      summary: Delete a pet
      operationId: deletePet
      tags:
        - Admin
      x-internal: true
      responses:
        "204":
          description: Deleted
  /stores:
    get:
      summary: List stores
      operationId: listStores
      tags:
        - stores
      responses:
        "200":
          description: OK
webhooks:
  petAdopted:
    post:
      operationId: petAdopted
      responses:
        "200":
          description: OK
`

func callListOperations(t *testing.T, input listOperationsInput) (*mcp.CallToolResult, listOperationsOutput) {
	t.Helper()
	input.Spec = specInput{Content: listOperationsTestSpec}
	result, out, err := handleListOperations(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	return result, out
}

func operationIDs(ops []operationSummary) []string {
	ids := make([]string, 0, len(ops))
	for _, op := range ops {
		ids = append(ids, op.OperationID)
	}
	return ids
}

func TestListOperations_All(t *testing.T) {
	result, output := callListOperations(t, listOperationsInput{})
	require.Nil(t, result)

	assert.Equal(t, 5, output.Total, "callbacks and webhooks are not listed")
	assert.Equal(t, 5, output.Matched)
	assert.Equal(t, []string{"listPets", "createPet", "getPet", "deletePet", "listStores"}, operationIDs(output.Operations))
	assert.Equal(t, "GET", output.Operations[0].Method)
	assert.Equal(t, "/pets", output.Operations[0].Path)
	assert.Equal(t, "List all pets", output.Operations[0].Summary)
	assert.Equal(t, []string{"pets"}, output.Operations[0].Tags)
}

func TestListOperations_Webhooks(t *testing.T) {
	_, output := callListOperations(t, listOperationsInput{Webhooks: true})

	assert.Equal(t, 6, output.Total)
	last := output.Operations[len(output.Operations)-1]
	assert.Equal(t, "petAdopted", last.OperationID)
	assert.Equal(t, "petAdopted", last.Path)
	assert.True(t, last.Webhook)
}

func TestListOperations_Filters(t *testing.T) {
	tests := []struct {
		name  string
		input listOperationsInput
		want  []string
	}{
		{name: "method", input: listOperationsInput{Method: "get"}, want: []string{"listPets", "getPet", "listStores"}},
		{name: "method upper", input: listOperationsInput{Method: "DELETE"}, want: []string{"deletePet"}},
		{name: "tag ignores case", input: listOperationsInput{Tag: "admin"}, want: []string{"deletePet"}},
		{name: "path glob", input: listOperationsInput{Path: "/pets/*"}, want: []string{"getPet", "deletePet"}},
		{name: "exact path", input: listOperationsInput{Path: "/pets"}, want: []string{"listPets", "createPet"}},
		{name: "deprecated", input: listOperationsInput{Deprecated: true}, want: []string{"getPet"}},
		{name: "operation id", input: listOperationsInput{OperationID: "createPet"}, want: []string{"createPet"}},
		{name: "extension value", input: listOperationsInput{Extension: "x-internal=true"}, want: []string{"deletePet"}},
		{name: "extension existence", input: listOperationsInput{Extension: "x-internal"}, want: []string{"deletePet"}},
		{name: "combined", input: listOperationsInput{Method: "get", Tag: "pets"}, want: []string{"listPets", "getPet"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output := callListOperations(t, tt.input)
			require.Nil(t, result)
			assert.Equal(t, len(tt.want), output.Matched)
			assert.Equal(t, tt.want, operationIDs(output.Operations))
		})
	}
}

func TestListOperations_NoMatches(t *testing.T) {
	_, output := callListOperations(t, listOperationsInput{Method: "patch"})

	assert.Equal(t, 5, output.Total)
	assert.Equal(t, 0, output.Matched)
	assert.Equal(t, 0, output.Returned)
	assert.Nil(t, output.Operations)
}

func TestListOperations_Pagination(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		limit  int
		want   []string
	}{
		{name: "limit", limit: 2, want: []string{"listPets", "createPet"}},
		{name: "offset", offset: 2, want: []string{"getPet", "deletePet", "listStores"}},
		{name: "offset and limit", offset: 1, limit: 2, want: []string{"createPet", "getPet"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output := callListOperations(t, listOperationsInput{Offset: tt.offset, Limit: tt.limit})
			assert.Equal(t, 5, output.Matched)
			assert.Equal(t, len(tt.want), output.Returned)
			assert.Equal(t, tt.want, operationIDs(output.Operations))
		})
	}
}

func TestListOperations_InvalidExtension(t *testing.T) {
	result, _ := callListOperations(t, listOperationsInput{Extension: "not-an-extension=true"})
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestListOperations_InvalidSpec(t *testing.T) {
	result, _, err := handleListOperations(context.Background(), &mcp.CallToolRequest{}, listOperationsInput{
		Spec: specInput{Content: "not valid yaml: ["},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestMatchPath(t *testing.T) {
	tests := []struct {
		template, pattern string
		want              bool
	}{
		{"/pets", "", true},
		{"/pets", "/pets", true},
		{"/pets/{id}", "/pets/*", true},
		{"/pets/{id}/toys", "/pets/*", false},
		{"/stores/{id}", "/pets/*", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPath(tt.template, tt.pattern), "%s ~ %s", tt.template, tt.pattern)
	}
}
