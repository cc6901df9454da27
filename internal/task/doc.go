// Package task runs studyset generation and render polling in the background.
//
// A bounded worker pool executes two kinds of task: a generation task that
// synthesizes a studyset's content once and starts its render jobs, and a
// render poll task that reconciles one studyset's pending reels against the
// rendering backend until none remain. The JobRegistry guarantees that at most
// one poll task runs per studyset; the poll task owns its registry entry and
// releases it on every exit path. RecoverPollers resumes polling for studysets
// that still had pending renders when the process last stopped.
package task
