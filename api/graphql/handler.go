package graphql

import (
	"net/http"

	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewHandler serves the schema over HTTP. With explorer set the GraphiQL page and schema
// introspection are available; otherwise introspection queries are rejected.
func NewHandler(schema gql.Schema, explorer bool) http.Handler {
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: explorer,
	})
	if explorer {
		return h
	}
	return rejectIntrospection(h)
}
