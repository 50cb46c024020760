// Package services contains the external catalog boundary.
//
// The [Catalog] interface captures exactly what the pipeline needs from the
// remote service: authenticated text search returning ranked candidates,
// ordered album track listings, playlist creation returning an opaque
// identifier, and batched playlist appends. [SpotifyService] is the one
// concrete implementation, a REST client over the Spotify Web API.
//
// The [OAuthService] interface extends Catalog for OAuth providers needing
// a browser-driven authorization code flow.
package services
