package handler

import (
	"quickmatch/backend/internal/storage"
	"quickmatch/backend/internal/token"
)

// Handler містить залежності HTTP-рівня: сховище кімнат та видавача токенів.
type Handler struct {
	Storage storage.Storage
	Tokens  *token.Issuer
}

func NewHandler(s storage.Storage, issuer *token.Issuer) *Handler {
	return &Handler{Storage: s, Tokens: issuer}
}
