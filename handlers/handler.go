package handlers

import (
	"context"

	"clementus360/goal-tracker/account"
	"clementus360/goal-tracker/goals"
	"clementus360/goal-tracker/llm"
	"clementus360/goal-tracker/types"
)

// StoreOpener builds and loads the goal store for one session.
type StoreOpener func(ctx context.Context, session types.Session) (*goals.Store, error)

type Handler struct {
	accounts  *account.Service
	openStore StoreOpener
	generator llm.Client
	clock     goals.Clock
	seeds     *goals.SeedOverlay
}

func New(accounts *account.Service, openStore StoreOpener, generator llm.Client) *Handler {
	return &Handler{
		accounts:  accounts,
		openStore: openStore,
		generator: generator,
		clock:     goals.SystemClock(),
	}
}

// WithClock replaces the clock used for derived metrics.
func (h *Handler) WithClock(clock goals.Clock) *Handler {
	h.clock = clock
	return h
}

// WithSeedOverlay lets logout drop the session's edited demo goals.
func (h *Handler) WithSeedOverlay(seeds *goals.SeedOverlay) *Handler {
	h.seeds = seeds
	return h
}

// Authenticate lets the handler act as the auth middleware's authenticator.
func (h *Handler) Authenticate(accessToken string) (types.Session, error) {
	return h.accounts.Authenticate(accessToken)
}
