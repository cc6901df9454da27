// Package api exposes the studyset and user services over HTTP. Handlers
// decode and validate JSON requests, call the service layer, and map service
// errors onto status codes with client-safe messages. Routing lives with the
// server command.
package api
