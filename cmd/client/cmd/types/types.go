package types

// ContextKey types the values the root command places in the command
// context for subcommands.
type ContextKey string

const ClientAppKey ContextKey = "app"
