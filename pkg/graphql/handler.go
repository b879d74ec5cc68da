package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/lanchonete/pkg/bind"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
)

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Do executes req against schema.
func Do(r *http.Request, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
}

// Handler serves POST bodies and GET ?query= requests. Results use the
// GraphQL response shape, not the API envelope.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		switch r.Method {
		case http.MethodGet:
			req.Query = r.URL.Query().Get("query")
			req.OperationName = r.URL.Query().Get("operationName")
		default:
			if err := bind.Decode(w, r, &req); err != nil {
				response.BadRequest(w, err.Error())
				return
			}
		}
		if req.Query == "" {
			response.BadRequest(w, "query is required")
			return
		}

		result := Do(r, schema, req)
		if result.HasErrors() {
			logger.WithCtx(r.Context()).Debug("graphql errors", "errors", result.Errors)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
