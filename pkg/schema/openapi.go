package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
)

// Extension is the vendor extension key used on exported schemas.
const Extension = "x-pageblocks"

// PageComponent is the component name of the page object.
const PageComponent = "Page"

// Info describes the exported document.
type Info struct {
	Title       string
	Version     string
	Description string
}

func (i Info) withDefaults() Info {
	if strings.TrimSpace(i.Title) == "" {
		i.Title = "pageblocks content"
	}
	if strings.TrimSpace(i.Version) == "" {
		i.Version = "1.0.0"
	}
	return i
}

// ListComponent is the component name of the block union of registry name.
func ListComponent(registry string) string {
	return registry + "-blocks"
}

// OpenAPI builds the document describing pages of schema and the edit host
// endpoints that exchange them.
func OpenAPI(schema blocks.PageSchema, info Info) (*openapi3.T, error) {
	if schema.Blocks == nil {
		return nil, fmt.Errorf("%w: page schema has no block registry", blocks.ErrConfig)
	}
	info = info.withDefaults()

	b := &builder{schemas: openapi3.Schemas{}}
	blocksRef := b.list(schema.Blocks)

	page := openapi3.NewObjectSchema()
	page.Title = "Page"
	page.Properties = openapi3.Schemas{}
	for _, field := range schema.Fields {
		if err := b.addField(page, field); err != nil {
			return nil, err
		}
	}
	page.Properties[content.BlocksKey] = openapi3.NewSchemaRef("", &openapi3.Schema{
		Type:  &openapi3.Types{openapi3.TypeArray},
		Items: blocksRef,
	})
	page.Required = []string{content.BlocksKey}
	b.schemas[PageComponent] = openapi3.NewSchemaRef("", page)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Components: &openapi3.Components{Schemas: b.schemas},
		Paths:      hostPaths(),
	}
	return doc, nil
}

type builder struct {
	schemas openapi3.Schemas
}

func ref(name string) string {
	return "#/components/schemas/" + name
}

// list registers the union of registry and every template reachable from it.
func (b *builder) list(registry *blocks.Registry) *openapi3.SchemaRef {
	name := ListComponent(registry.Name())
	if existing, ok := b.schemas[name]; ok {
		return openapi3.NewSchemaRef(ref(name), existing.Value)
	}

	union := &openapi3.Schema{
		Title: registry.Name(),
		Discriminator: &openapi3.Discriminator{
			PropertyName: content.KindKey,
			Mapping:      map[string]string{},
		},
	}
	b.schemas[name] = openapi3.NewSchemaRef("", union)

	for _, tmpl := range registry.Templates() {
		kind := string(tmpl.Kind)
		if _, ok := b.schemas[kind]; !ok {
			b.schemas[kind] = openapi3.NewSchemaRef("", b.template(tmpl))
		}
		union.OneOf = append(union.OneOf, openapi3.NewSchemaRef(ref(kind), b.schemas[kind].Value))
		union.Discriminator.Mapping[kind] = ref(kind)
	}
	return openapi3.NewSchemaRef(ref(name), union)
}

func (b *builder) template(tmpl blocks.Template) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = tmpl.Label
	schema.Properties = openapi3.Schemas{
		content.KindKey: openapi3.NewSchemaRef("", &openapi3.Schema{
			Type: &openapi3.Types{openapi3.TypeString},
			Enum: []any{string(tmpl.Kind)},
		}),
	}
	schema.Required = []string{content.KindKey}
	schema.Extensions = map[string]any{
		Extension: map[string]any{"kind": string(tmpl.Kind), "label": tmpl.Label},
	}

	for _, field := range tmpl.Fields {
		if field.Widget == fields.WidgetBlocks {
			scope, ok := tmpl.List(field.Name)
			if !ok {
				continue
			}
			list := &openapi3.Schema{
				Type:       &openapi3.Types{openapi3.TypeArray},
				Title:      field.Label,
				Items:      b.list(scope),
				Extensions: fieldExtension(field),
			}
			schema.Properties[field.Name] = openapi3.NewSchemaRef("", list)
			continue
		}
		// Fields were validated at registration.
		_ = b.addField(schema, field)
	}
	if item := tmpl.NewItem(); len(item) > 0 {
		schema.Default = item
	}
	return schema
}

// addField places field below parent, creating intermediate objects for
// dotted names (`left.src`).
func (b *builder) addField(parent *openapi3.Schema, field fields.Field) error {
	path, err := field.Path()
	if err != nil {
		return err
	}
	target := parent
	for _, segment := range path[:len(path)-1] {
		next, ok := target.Properties[segment]
		if !ok || next.Value == nil {
			obj := openapi3.NewObjectSchema()
			obj.Properties = openapi3.Schemas{}
			next = openapi3.NewSchemaRef("", obj)
			target.Properties[segment] = next
		}
		target = next.Value
	}
	target.Properties[path.Last()] = openapi3.NewSchemaRef("", leaf(field))
	return nil
}

func leaf(field fields.Field) *openapi3.Schema {
	schema := openapi3.NewStringSchema()
	schema.Title = field.Label
	if field.Enumerated() {
		for _, option := range field.Options {
			schema.Enum = append(schema.Enum, option)
		}
	}
	schema.Extensions = fieldExtension(field)
	return schema
}

func fieldExtension(field fields.Field) map[string]any {
	meta := map[string]any{
		"widget": string(field.Widget),
		"label":  field.Label,
	}
	if field.Inline {
		meta["inline"] = true
	}
	if field.Widget == fields.WidgetImage {
		meta["uploadDir"] = field.Dir()
	}
	return map[string]any{Extension: meta}
}

// Components returns the sorted component names of doc.
func Components(doc *openapi3.T) []string {
	if doc == nil || doc.Components == nil {
		return nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
