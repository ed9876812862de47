package rest

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/internal/service/responder"
	"github.com/sandevgo/saori/pkg/log"
)

const maxBodyBytes = 1 << 20

type Responder interface {
	Respond(ctx context.Context, req core.Request) (core.Reply, error)
}

type Handler struct {
	responder Responder
}

func NewHandler(r Responder) *Handler {
	return &Handler{responder: r}
}

// Respond answers 200 with a reply for every valid request. Only bad input
// and missing configuration produce error statuses.
func (h *Handler) Respond(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	req, err := responder.Normalize(body)
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	case errors.Is(err, core.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'message'"})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	reply, err := h.responder.Respond(ctx, req)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("respond failed")
		if errors.Is(err, core.ErrConfigurationMissing) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration missing"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": core.SaoriVersion})
}
