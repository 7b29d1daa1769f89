package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/assistant"
	"codeberg.org/mane/server/internal/errors"
)

const maxHistoryMessages = 50

// answers shopping queries; satisfied by *assistant.Assistant
type Answerer interface {
	Answer(ctx context.Context, req assistant.AnswerRequest) (*assistant.AnswerResponse, error)
}

// Handler runs one assistant turn over the posted message and conversation
// history
func Handler(answerer Answerer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			errors.BadRequest(c, "message must not be blank", nil)
			return
		}

		history := req.ConversationHistory
		if len(history) > maxHistoryMessages {
			history = history[len(history)-maxHistoryMessages:]
		}

		resp, err := answerer.Answer(c.Request.Context(), assistant.AnswerRequest{
			Query:               req.Message,
			ConversationHistory: history,
		})

		if err != nil {
			errors.InternalError(c, "failed to generate reply", err)
			return
		}

		responseProducts := resp.Products
		if responseProducts == nil {
			responseProducts = []products.Product{}
		}

		c.JSON(http.StatusOK, Response{
			Message:            resp.Reply,
			Products:           responseProducts,
			NeedsClarification: resp.NeedsClarification,
			Model:              resp.Model,
		})
	}
}
