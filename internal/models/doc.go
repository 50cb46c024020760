// Package models defines domain entities and persistence interfaces for the rymx playlist builder.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs flowing through the pipeline
//   - [Entry] : One (artist, title, kind) record parsed from a saved list page
//   - [Candidate] : A single catalog search result under consideration
//   - [Playlist] : Basic playlist metadata from the catalog service
//
// 2. Persistent Entities: Database-backed models
//   - [Resolution] : A cached query-to-URIs lookup so repeated runs skip searches
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
