// Package app wires the application together: configuration, logging, the
// pipeline loader, and the planning run. It is decoupled from any specific
// entrypoint like a CLI.
package app
