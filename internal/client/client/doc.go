// Package client contains client-side building blocks for Kanbord.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): auth, the current user,
//     note CRUD with filters and paging, export, and a health probe.
//  2. HTTPClient, a JSON-over-HTTP implementation that injects the bearer
//     token and maps status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI
//     session store: an SQLite file migrated with embedded goose scripts.
//
// # Error Handling
//
// Callers match with errors.Is: ErrUnavailable (transport failure or 502-504),
// ErrUnauthorized (401), ErrNotFound (404), ErrNoSession. A 400 carrying
// field errors becomes *common.ValidationError; anything else is *APIError.
package client
