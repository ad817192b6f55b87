package capabilities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/govkit/servicecatalog/internal/domain"
)

var (
	// ErrDocumentInvalid is returned when a capability document fails schema
	// validation.
	ErrDocumentInvalid = errors.New("capabilities: document invalid")
)

// documentSchema constrains capability documents: one entry per known entity
// type, each with a non-empty list of lowercase language codes.
const documentSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"entities": {
			"type": "object",
			"properties": {
				"service":             {"$ref": "#/$defs/entry"},
				"channel":             {"$ref": "#/$defs/entry"},
				"general_description": {"$ref": "#/$defs/entry"},
				"organization":        {"$ref": "#/$defs/entry"}
			},
			"additionalProperties": false
		}
	},
	"required": ["entities"],
	"additionalProperties": false,
	"$defs": {
		"entry": {
			"type": "object",
			"properties": {
				"languages": {
					"type": "array",
					"items": {"type": "string", "pattern": "^[a-z]{2,3}$"},
					"minItems": 1,
					"uniqueItems": true
				}
			},
			"required": ["languages"],
			"additionalProperties": false
		}
	}
}`

type document struct {
	Entities map[string]entry `json:"entities"`
}

type entry struct {
	Languages []string `json:"languages"`
}

// Table answers which languages each entity type supports. A zero Table
// enables nothing; use Default for the standard configuration.
type Table struct {
	enabled map[domain.EntityType]map[string]struct{}
}

// Default returns the standard capability table: every entity type supports
// Finnish, Swedish and English.
func Default() *Table {
	table := &Table{enabled: map[domain.EntityType]map[string]struct{}{}}
	for _, entityType := range []domain.EntityType{
		domain.EntityTypeService,
		domain.EntityTypeChannel,
		domain.EntityTypeGeneralDescription,
		domain.EntityTypeOrganization,
	} {
		table.enabled[entityType] = map[string]struct{}{
			"fi": {},
			"sv": {},
			"en": {},
		}
	}
	return table
}

// Parse builds a table from a JSON capability document, validating it against
// the capability schema first.
func Parse(raw []byte) (*Table, error) {
	compiled, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("capabilities: compile schema: %w", err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}
	if err := compiled.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}

	table := &Table{enabled: map[domain.EntityType]map[string]struct{}{}}
	for name, item := range doc.Entities {
		entityType := domain.EntityType(name)
		languages := make(map[string]struct{}, len(item.Languages))
		for _, lang := range item.Languages {
			languages[strings.ToLower(lang)] = struct{}{}
		}
		table.enabled[entityType] = languages
	}
	return table, nil
}

// LanguageEnabled reports whether languageCode is enabled for entityType.
func (t *Table) LanguageEnabled(entityType domain.EntityType, languageCode string) bool {
	if t == nil || t.enabled == nil {
		return false
	}
	languages, ok := t.enabled[entityType]
	if !ok {
		return false
	}
	_, enabled := languages[strings.ToLower(strings.TrimSpace(languageCode))]
	return enabled
}

// Languages returns the enabled language codes for entityType.
func (t *Table) Languages(entityType domain.EntityType) []string {
	if t == nil || t.enabled == nil {
		return nil
	}
	languages, ok := t.enabled[entityType]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(languages))
	for lang := range languages {
		out = append(out, lang)
	}
	return out
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("capabilities.json", bytes.NewReader([]byte(documentSchema))); err != nil {
		return nil, err
	}
	return compiler.Compile("capabilities.json")
}
