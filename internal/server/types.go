package server

import (
	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/types"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error *types.ActionError `json:"error"`
}

// CatalogueResponse is the body of GET /v1/actions.
type CatalogueResponse struct {
	Actions []actions.Definition `json:"actions"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}
