package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/types"
)

// maxBodyBytes bounds an action request body.
const maxBodyBytes = 64 << 10

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{OK: true, Version: s.version})
}

func (s *Server) handleCatalogue(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogueResponse{Actions: actions.Catalogue()})
}

// handleInvoke runs the named action with the request body as its
// arguments and replies with the action result.
func (s *Server) handleInvoke(c *gin.Context) {
	name := c.Param("name")
	if _, ok := actions.Lookup(name); !ok {
		writeError(c, types.NewActionError(types.CodeUnknownAction, "unknown action: "+name, nil))
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		writeError(c, types.NewActionError(types.CodeInvalidArgument, "read request body: "+err.Error(), nil))
		return
	}
	if len(body) > maxBodyBytes {
		writeError(c, types.NewActionError(types.CodeInvalidArgument, "request body too large", nil))
		return
	}

	result, err := s.surface.Invoke(c.Request.Context(), name, body)
	if err != nil {
		ae := actions.Classify(err)
		if ae.Code != types.CodeInvalidArgument {
			s.log.Error("action failed", "action", name, "err", err)
		}
		writeError(c, ae)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeError(c *gin.Context, ae *types.ActionError) {
	c.AbortWithStatusJSON(statusFor(ae.Code), ErrorResponse{Error: ae})
}

func statusFor(code string) int {
	switch code {
	case types.CodeInvalidArgument:
		return http.StatusBadRequest
	case types.CodeUnknownAction:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
