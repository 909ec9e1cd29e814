// Package types carries the context keys shared between the root
// command and the subcommand packages.
package types

type contextKey string

// ClientAppKey locates the initialized client app in the command
// context.
const ClientAppKey contextKey = "clusterview-app"
