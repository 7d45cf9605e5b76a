package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

func jsonObject(properties map[string]*openapi3.Schema, required ...string) *openapi3.SchemaRef {
	schema := openapi3.NewObjectSchema()
	schema.Properties = openapi3.Schemas{}
	for name, value := range properties {
		schema.Properties[name] = openapi3.NewSchemaRef("", value)
	}
	schema.Required = required
	return openapi3.NewSchemaRef("", schema)
}

func post(summary string, body *openapi3.SchemaRef) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Summary = summary
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(body),
	}
	ok := openapi3.NewResponse().
		WithDescription("the change was applied to the working copy").
		WithJSONSchemaRef(jsonObject(map[string]*openapi3.Schema{
			"path":  openapi3.NewStringSchema(),
			"dirty": openapi3.NewBoolSchema(),
		}, "path", "dirty"))
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: ok}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{Value: errorResponse("the change was rejected")}),
	)
	return op
}

func errorResponse(description string) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(jsonObject(map[string]*openapi3.Schema{"error": openapi3.NewStringSchema()}, "error"))
}

// hostPaths describes the JSON endpoints of the edit host.
func hostPaths() *openapi3.Paths {
	content := openapi3.NewOperation()
	content.Summary = "Working copy of the page"
	content.Responses = openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription("working copy").
			WithJSONSchemaRef(openapi3.NewSchemaRef(ref(PageComponent), nil)),
	}))

	submit := openapi3.NewOperation()
	submit.Summary = "Write the working copy to the content store"
	alerts := openapi3.NewArraySchema().WithItems(&openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{
			"level":   openapi3.NewSchemaRef("", openapi3.NewStringSchema().WithEnum("success", "info", "error")),
			"message": openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		},
	})
	alertsBody := jsonObject(map[string]*openapi3.Schema{"alerts": alerts, "error": openapi3.NewStringSchema()}, "alerts")
	submit.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("saved").WithJSONSchemaRef(alertsBody),
		}),
		openapi3.WithStatus(500, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("the store write failed").WithJSONSchemaRef(alertsBody),
		}),
	)

	drain := openapi3.NewOperation()
	drain.Summary = "Drain queued alerts"
	drain.Responses = openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription("queued alerts").WithJSONSchemaRef(alertsBody),
	}))

	str := openapi3.NewStringSchema
	integer := openapi3.NewIntegerSchema
	return openapi3.NewPaths(
		openapi3.WithPath("/api/content", &openapi3.PathItem{Get: content}),
		openapi3.WithPath("/api/fields", &openapi3.PathItem{Post: post("Set one field",
			jsonObject(map[string]*openapi3.Schema{"path": str(), "value": {}}, "path", "value"))}),
		openapi3.WithPath("/api/blocks", &openapi3.PathItem{Post: post("Insert a block",
			jsonObject(map[string]*openapi3.Schema{"list": str(), "index": integer(), "kind": str()}, "list", "kind"))}),
		openapi3.WithPath("/api/blocks/remove", &openapi3.PathItem{Post: post("Remove a block",
			jsonObject(map[string]*openapi3.Schema{"list": str(), "index": integer()}, "list", "index"))}),
		openapi3.WithPath("/api/blocks/move", &openapi3.PathItem{Post: post("Move a block",
			jsonObject(map[string]*openapi3.Schema{"list": str(), "from": integer(), "to": integer()}, "list", "from", "to"))}),
		openapi3.WithPath("/api/submit", &openapi3.PathItem{Post: submit}),
		openapi3.WithPath("/api/alerts", &openapi3.PathItem{Get: drain}),
	)
}
