package nakama

import (
	"thunee/internal/domain"
)

// Client command payloads. Each maps to one op code and is JSON encoded.

type bidMessage struct {
	Amount int `json:"amount"`
}

type suitMessage struct {
	Suit     domain.Suit `json:"suit"`
	LastCard bool        `json:"lastCard,omitempty"`
}

type playCardMessage struct {
	Card domain.Card `json:"card"`
}

type jodhiMessage struct {
	Suit     domain.Suit `json:"suit"`
	WithJack bool        `json:"withJack"`
}

type challengeMessage struct {
	AccusedID string      `json:"accusedId"`
	Suit      domain.Suit `json:"suit,omitempty"` // jodhi challenges only
}

// Server event payloads.

type errorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// seatTokenMessage is sent privately after a seat is bound so the client can
// reclaim it after a disconnect.
type seatTokenMessage struct {
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}
