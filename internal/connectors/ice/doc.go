// Package ice implements the client for the ICE biological parts
// registry (Inventory of Composable Elements).
//
// The client owns a login session and synchronizes in-memory Entry
// records with the registry over its JSON REST API: fetching entries and
// their SBOL sequence documents, creating and updating entries, exact
// blast searches, permission grants and search-index rebuilds.
//
// A Client is synchronous and not safe for concurrent use; callers
// needing concurrency should use one client per worker.
package ice
