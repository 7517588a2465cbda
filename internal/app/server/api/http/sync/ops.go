package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) replaceAllOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-replace-all-client-data",
		Method:      http.MethodPost,
		Path:        "/api/sync/replace-all-client-data",
		Summary:     "Replace the server state with the pushed client set",
		Description: "Accepts the complete client-side expense set; rows absent from the payload are soft-deleted",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getAllOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-get-all-server-data",
		Method:      http.MethodGet,
		Path:        "/api/sync/get-all-server-data",
		Summary:     "Fetch the complete server state",
		Description: "Returns all expenses (soft-deleted included), the category registry and the server clock",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
