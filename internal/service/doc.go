// Package service contains the application use cases behind the HTTP API.
//
// StudysetService creates studysets and hands them to the background pipeline
// through an events.EventEmitter, so request handlers never block on content
// generation. It also assembles the read model (studyset plus its flattened
// feed). UserService manages lazily created users and their opaque progress.
//
// Services return sentinel errors for expected conditions and wrap anything
// unexpected in a service error type; the API layer maps both to HTTP status
// codes.
package service
