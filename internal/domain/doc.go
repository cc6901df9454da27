// Package domain contains the core business entities of the feed service:
// studysets (one generation job and its resulting feed), the item variants
// that make up a feed, reel render sub-state, and users.
//
// The types here are explicit tagged structures rather than loosely-typed
// documents. They are the shape persisted in the snapshot and returned to
// clients, and they carry the state transition rules that background tasks
// rely on (pending -> ready|error for a studyset, non-terminal -> success|failed
// for a reel render).
package domain
