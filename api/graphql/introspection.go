package graphql

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/handler"

	pkgerrors "github.com/angelmondragon/plu-backend/pkg/errors"
)

const introspectionDisabled = "introspection is disabled"

// rejectIntrospection answers 400 for any operation selecting __schema or __type. __typename
// stays available. Unparseable queries pass through so the executor reports the syntax error.
func rejectIntrospection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			read, err := io.ReadAll(r.Body)
			if err != nil {
				writeGraphQLError(w, http.StatusBadRequest, "could not read request body", pkgerrors.CodeValidation)
				return
			}
			body = read
		}

		inspect := r.Clone(r.Context())
		inspect.Body = io.NopCloser(bytes.NewReader(body))
		if opts := handler.NewRequestOptions(inspect); opts != nil && selectsIntrospection(opts.Query) {
			writeGraphQLError(w, http.StatusBadRequest, introspectionDisabled, pkgerrors.CodeValidation)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func selectsIntrospection(query string) bool {
	if query == "" {
		return false
	}
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.OperationDefinition:
			if hasMetaField(d.SelectionSet) {
				return true
			}
		case *ast.FragmentDefinition:
			if hasMetaField(d.SelectionSet) {
				return true
			}
		}
	}
	return false
}

func hasMetaField(set *ast.SelectionSet) bool {
	if set == nil {
		return false
	}
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if s.Name != nil && (s.Name.Value == "__schema" || s.Name.Value == "__type") {
				return true
			}
			if hasMetaField(s.SelectionSet) {
				return true
			}
		case *ast.InlineFragment:
			if hasMetaField(s.SelectionSet) {
				return true
			}
		}
	}
	return false
}

func writeGraphQLError(w http.ResponseWriter, status int, message string, code pkgerrors.Code) {
	res := gql.Result{Errors: []gqlerrors.FormattedError{{
		Message:    message,
		Extensions: map[string]interface{}{"code": string(code)},
	}}}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}
