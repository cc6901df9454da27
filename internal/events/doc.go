// Package events decouples request handling from background task creation.
//
// The studyset service emits a TaskRequestEvent describing the generation it
// wants and returns; a Dispatcher routes the event to the handlers subscribed
// to its type, which build the task and hand it to the runner. The service
// layer never imports the task package.
package events
