package main

import (
	"context"
	"fmt"

	"clementus360/goal-tracker/account"
	"clementus360/goal-tracker/config"
	"clementus360/goal-tracker/goals"
	"clementus360/goal-tracker/handlers"
	"clementus360/goal-tracker/storage"
	"clementus360/goal-tracker/supabase"
	"clementus360/goal-tracker/types"
)

// backend is the account service plus a way to open a goal store, for
// whichever mode the settings select.
type backend struct {
	accounts  *account.Service
	openStore handlers.StoreOpener
	seeds     *goals.SeedOverlay
	close     func() error
}

func newBackend(settings config.Settings) (backend, error) {
	if settings.RemoteEnabled() {
		return newRemoteBackend(settings)
	}
	return newLocalBackend(settings)
}

func newLocalBackend(settings config.Settings) (backend, error) {
	database, err := storage.OpenSQLite(settings.StorePath)
	if err != nil {
		return backend{}, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return backend{}, fmt.Errorf("failed to get sql handle: %w", err)
	}

	collections := storage.NewCollections(storage.NewSQLiteKV(database))
	clock := goals.SystemClock()
	seeds := goals.NewSeedOverlay()
	localGoals := storage.NewLocalGoals(collections, clock.Now)
	tokens := account.NewTokens(settings.JWTSecret, settings.TokenTTL)
	auth := account.NewLocalAuth(storage.NewLocalUsers(collections), tokens)

	config.Logger.WithField("path", settings.StorePath).Info("Using local storage")

	return backend{
		accounts: account.NewService(auth),
		openStore: func(ctx context.Context, session types.Session) (*goals.Store, error) {
			store := goals.NewStore(session, localGoals.ForUser(session.User.ID),
				goals.WithClock(clock), goals.WithSeeds(settings.SeedGoals), goals.WithSeedOverlay(seeds))
			if err := store.Load(ctx); err != nil {
				return nil, err
			}
			return store, nil
		},
		seeds: seeds,
		close: sqlDB.Close,
	}, nil
}

func newRemoteBackend(settings config.Settings) (backend, error) {
	client, err := supabase.NewClient(settings.SupabaseURL, settings.SupabaseKey)
	if err != nil {
		return backend{}, err
	}
	auth := supabase.NewRemoteAuth(client, settings.SupabaseJWTSecret)
	seeds := goals.NewSeedOverlay()

	if settings.SupabaseJWTSecret == "" {
		config.Logger.Warn("SUPABASE_JWT_SECRET not set, access tokens are decoded without signature checks")
	}
	config.Logger.WithField("url", settings.SupabaseURL).Info("Using Supabase storage")

	return backend{
		accounts: account.NewService(auth),
		openStore: func(ctx context.Context, session types.Session) (*goals.Store, error) {
			userClient, err := supabase.ClientForToken(settings.SupabaseURL, settings.SupabaseKey, session.AccessToken)
			if err != nil {
				return nil, types.AuthError(err.Error())
			}
			remote := supabase.NewRemoteGoals(userClient, session.User.ID)
			store := goals.NewStore(session, remote, goals.WithSeeds(settings.SeedGoals), goals.WithSeedOverlay(seeds))
			if err := store.Load(ctx); err != nil {
				return nil, err
			}
			return store, nil
		},
		seeds: seeds,
		close: func() error { return nil },
	}, nil
}
