// Package cli builds the topicmapgo command tree, validates user input and
// handles process-level concerns like exit codes. It translates flags into
// the application's configuration and drives the app package.
package cli
