// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docsync/docsync/document"
)

// PetstoreOAS3 is an OpenAPI 3.0.3 document with operations tagged
// [pets], [store] and [pets, store]. Inventory is used only by the store
// operation; ApiKey is never required.
const PetstoreOAS3 = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://petstore.example.com/v1
tags:
  - name: pets
  - name: store
paths:
  /pets:
    get:
      tags: [pets]
      operationId: listPets
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pets'
  /store/inventory:
    get:
      tags: [store]
      operationId: getInventory
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Inventory'
  /pets/{petId}/orders:
    parameters:
      - $ref: '#/components/parameters/PetId'
    post:
      tags: [pets, store]
      operationId: orderPet
      security:
        - petstore_auth: [write]
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Order'
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Order'
components:
  schemas:
    Pet:
      type: object
      properties:
        id:
          type: integer
        category:
          $ref: '#/components/schemas/Category'
    Category:
      type: object
      properties:
        name:
          type: string
    Pets:
      type: array
      items:
        $ref: '#/components/schemas/Pet'
    Inventory:
      type: object
      additionalProperties:
        type: integer
    Order:
      type: object
      properties:
        pet:
          $ref: '#/components/schemas/Pet'
  parameters:
    PetId:
      name: petId
      in: path
      required: true
      schema:
        type: string
  securitySchemes:
    petstore_auth:
      type: oauth2
      flows:
        implicit:
          authorizationUrl: https://petstore.example.com/oauth
          scopes:
            write: modify pets
    ApiKey:
      type: apiKey
      name: api_key
      in: header
`

// SwaggerPetstore is a Swagger 2.0 document exercising body, formData and
// global components.
const SwaggerPetstore = `swagger: "2.0"
info:
  title: Swagger Petstore
  version: 1.0.0
host: petstore.swagger.io
basePath: /v2
schemes: [https, http]
consumes: [application/json]
produces: [application/json, application/xml]
tags:
  - name: pet
paths:
  /pet:
    post:
      tags: [pet]
      operationId: addPet
      parameters:
        - in: body
          name: body
          required: true
          schema:
            $ref: '#/definitions/Pet'
      responses:
        "405":
          description: Invalid input
    get:
      tags: [pet]
      operationId: findPets
      parameters:
        - name: status
          in: query
          type: array
          items:
            type: string
          collectionFormat: multi
        - $ref: '#/parameters/Limit'
      responses:
        "200":
          description: ok
          schema:
            type: array
            items:
              $ref: '#/definitions/Pet'
  /pet/{petId}/uploadImage:
    post:
      tags: [pet]
      operationId: uploadFile
      consumes: [multipart/form-data]
      parameters:
        - name: petId
          in: path
          required: true
          type: integer
          format: int64
        - name: file
          in: formData
          required: true
          type: file
      responses:
        "200":
          $ref: '#/responses/Uploaded'
parameters:
  Limit:
    name: limit
    in: query
    type: integer
responses:
  Uploaded:
    description: uploaded
    schema:
      type: object
definitions:
  Pet:
    type: object
    required: [name]
    properties:
      name:
        type: string
      tag:
        type: string
        x-nullable: true
securityDefinitions:
  petstore_auth:
    type: oauth2
    flow: implicit
    authorizationUrl: https://petstore.swagger.io/oauth/dialog
    scopes:
      write:pets: modify pets
  basic:
    type: basic
`

// PostmanCollection is a Postman v2.1 collection with a folder, path
// variables, a raw JSON body and a saved response.
const PostmanCollection = `{
  "info": {
    "_postman_id": "7d2c3a43-0000-4000-8000-000000000000",
    "name": "Pet Collection",
    "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"
  },
  "variable": [
    {"key": "baseUrl", "value": "https://api.example.com"}
  ],
  "auth": {
    "type": "bearer",
    "bearer": [{"key": "token", "value": "{{token}}", "type": "string"}]
  },
  "item": [
    {
      "name": "pets",
      "description": "Pet operations",
      "item": [
        {
          "name": "Get pet",
          "request": {
            "method": "GET",
            "header": [{"key": "X-Trace", "value": "abc"}],
            "url": {
              "raw": "{{baseUrl}}/pets/:petId?verbose=true",
              "host": ["{{baseUrl}}"],
              "path": ["pets", ":petId"],
              "query": [{"key": "verbose", "value": "true"}],
              "variable": [{"key": "petId", "value": "1", "description": "Pet id"}]
            }
          },
          "response": [
            {
              "name": "found",
              "code": 200,
              "header": [{"key": "Content-Type", "value": "application/json"}],
              "body": "{\"id\": 1, \"name\": \"Rex\"}"
            }
          ]
        },
        {
          "name": "Create pet",
          "request": {
            "method": "POST",
            "header": [{"key": "Content-Type", "value": "application/json"}],
            "body": {"mode": "raw", "raw": "{\"name\": \"Rex\"}"},
            "url": "{{baseUrl}}/pets"
          }
        }
      ]
    },
    {
      "name": "Health",
      "request": "https://status.example.com/health"
    }
  ]
}`

// MustParse parses src into a document, failing the test on error.
func MustParse(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return doc
}

// TreeDiff reports the differences between two document trees, honoring
// key order.
func TreeDiff(want, got any) string {
	return cmp.Diff(want, got, cmp.AllowUnexported(document.Map{}))
}

// AssertTreeEqual fails the test when two document trees differ.
func AssertTreeEqual(t *testing.T, want, got any) {
	t.Helper()
	if diff := TreeDiff(want, got); diff != "" {
		t.Errorf("document trees differ (-want +got):\n%s", diff)
	}
}

// WriteFiles writes name→content pairs below a fresh temporary directory
// and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}
