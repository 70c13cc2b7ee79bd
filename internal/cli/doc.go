// Package cli provides the interactive projtrack command-line client.
//
// The REPL is the presentation caller of the identity and project stores.
// Anyone can browse projects and download attachments; every mutation and all
// user management require a logged-in admin, checked here because the stores
// themselves do not authorize.
//
// Ids may be abbreviated to any unique prefix.
//
// The loop is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
