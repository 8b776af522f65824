// Package openapi describes the mounted admin routes as an OpenAPI 3
// document so hosts can publish the scaffolded surface alongside their API
// docs.
package openapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-crudgen/pkg/model"
	"github.com/goliatone/go-crudgen/pkg/urls"
)

// Document aliases the kin-openapi document type.
type Document = openapi3.T

// Info carries the document identity.
type Info struct {
	Title   string
	Version string
}

// BuildDocument walks the registered route names and produces an OpenAPI
// document: one path item per route, one component schema per model. Routes
// that do not follow the `<model>_<action>` convention are described with a
// bare GET operation.
func BuildDocument(info Info, resolver *urls.Resolver, metas map[string]model.Metadata) (*openapi3.T, error) {
	if resolver == nil {
		return nil, fmt.Errorf("openapi: resolver is required")
	}
	if info.Title == "" {
		info.Title = "Admin"
	}
	if info.Version == "" {
		info.Version = "0.1.0"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: info.Title, Version: info.Version},
		Paths:   openapi3.NewPaths(),
	}

	schemas := make(openapi3.Schemas)
	for _, meta := range metas {
		schemas[meta.Name] = openapi3.NewSchemaRef("", modelSchema(meta))
	}
	if len(schemas) > 0 {
		doc.Components = &openapi3.Components{Schemas: schemas}
	}

	for _, name := range resolver.Names() {
		template, ok := resolver.Path(name)
		if !ok {
			continue
		}
		path := toOpenAPIPath(template)
		item := doc.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(path, item)
		}

		modelName, action := urls.Split(name)
		attachOperations(item, name, modelName, action, strings.Contains(path, "{"))
	}
	return doc, nil
}

func attachOperations(item *openapi3.PathItem, name, modelName, action string, hasPathParam bool) {
	op := func(summary string) *openapi3.Operation {
		operation := &openapi3.Operation{
			OperationID: name,
			Summary:     summary,
			Tags:        []string{modelName},
			Responses:   htmlResponses(),
		}
		if hasPathParam {
			operation.Parameters = openapi3.Parameters{
				{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema())},
			}
		}
		return operation
	}

	switch action {
	case urls.ActionList:
		operation := op("List " + modelName)
		operation.Parameters = append(operation.Parameters,
			&openapi3.ParameterRef{Value: openapi3.NewQueryParameter("page").WithSchema(openapi3.NewIntegerSchema())},
			&openapi3.ParameterRef{Value: openapi3.NewQueryParameter("sort").WithSchema(openapi3.NewStringSchema())},
			&openapi3.ParameterRef{Value: openapi3.NewQueryParameter("order").WithSchema(
				openapi3.NewStringSchema().WithEnum("asc", "desc"))},
		)
		item.Get = operation
	case urls.ActionCreate:
		item.Get = op("Create form for " + modelName)
		post := op("Create " + modelName)
		post.OperationID = name + "_submit"
		post.RequestBody = formRequestBody(modelName)
		item.Post = post
	case urls.ActionDetail:
		item.Get = op("Detail of " + modelName)
	case urls.ActionUpdate:
		item.Get = op("Update form for " + modelName)
		post := op("Update " + modelName)
		post.OperationID = name + "_submit"
		post.RequestBody = formRequestBody(modelName)
		item.Post = post
	case urls.ActionDelete:
		item.Get = op("Delete confirmation for " + modelName)
		post := op("Delete " + modelName)
		post.OperationID = name + "_submit"
		item.Post = post
	default:
		item.Get = op(name)
	}
}

func htmlResponses() *openapi3.Responses {
	return openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Rendered admin page"),
		}),
		openapi3.WithStatus(404, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Not found"),
		}),
	)
}

func formRequestBody(modelName string) *openapi3.RequestBodyRef {
	schema := openapi3.NewSchemaRef("#/components/schemas/"+modelName, nil)
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithContent(openapi3.Content{
			"application/x-www-form-urlencoded": openapi3.NewMediaType().WithSchemaRef(schema),
		}),
	}
}

func modelSchema(meta model.Metadata) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, field := range meta.Fields {
		schema.WithProperty(field.Column, fieldSchema(field))
	}
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	switch field.Kind {
	case model.KindInteger:
		return openapi3.NewInt64Schema()
	case model.KindNumber:
		return openapi3.NewFloat64Schema()
	case model.KindBoolean:
		return openapi3.NewBoolSchema()
	case model.KindTime:
		return openapi3.NewDateTimeSchema()
	default:
		return openapi3.NewStringSchema()
	}
}

// toOpenAPIPath converts router-style `:param` segments into `{param}`.
func toOpenAPIPath(template string) string {
	segments := strings.Split(template, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
