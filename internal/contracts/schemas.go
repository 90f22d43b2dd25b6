package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFS embed.FS

const schemaBaseURL = "https://marketplace.local/"

const (
	SearchListingsRequest = "SearchListingsRequest"
	FilterOptionsRequest  = "FilterOptionsRequest"
)

var schemaFiles = map[string]string{
	SearchListingsRequest + "/1": "schemas/requests/search-listings/v1.json",
	FilterOptionsRequest + "/1":  "schemas/requests/filter-options/v1.json",
}

var compiledSchemas map[string]*jsonschema.Schema

func init() {
	schemas, err := compileAll()
	if err != nil {
		panic(fmt.Sprintf("contracts: %v", err))
	}
	compiledSchemas = schemas
}

// compileAll регистрирует все встроенные файлы как ресурсы, чтобы работали относительные $ref.
func compileAll() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	err := fs.WalkDir(schemaFS, "schemas", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".json" {
			return err
		}
		data, err := schemaFS.ReadFile(p)
		if err != nil {
			return err
		}
		return compiler.AddResource(schemaBaseURL+p, bytes.NewReader(data))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded schemas: %w", err)
	}

	out := make(map[string]*jsonschema.Schema, len(schemaFiles))
	for key, file := range schemaFiles {
		schema, err := compiler.Compile(schemaBaseURL + file)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", file, err)
		}
		out[key] = schema
	}
	return out, nil
}

// ValidateRequest проверяет тело входящего запроса по схеме name/version.
func ValidateRequest(name string, version int, body []byte) error {
	schema, ok := compiledSchemas[fmt.Sprintf("%s/%d", name, version)]
	if !ok {
		return fmt.Errorf("schema for request '%s' version %d not found", name, version)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %s", describe(err))
	}
	return nil
}

// describe сводит дерево ошибок jsonschema к списку "путь: сообщение".
func describe(err error) string {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var leaves []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			leaves = append(leaves, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(leaves, "; ")
}
