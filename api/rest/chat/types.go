package chat

import (
	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/assistant"
)

// request payload for the shopping assistant
type Request struct {
	Message             string              `json:"message" binding:"required"`
	ConversationHistory []assistant.Message `json:"conversation_history"`
}

// assistant reply with the products it was grounded on
type Response struct {
	Message            string             `json:"message"`
	Products           []products.Product `json:"products"`
	NeedsClarification bool               `json:"needs_clarification"`
	Model              string             `json:"model"`
}
