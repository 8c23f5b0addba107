// Package cli provides the interactive Perfect Match command-line client.
//
// It wires configuration, the on-device store, the REST API client, and an
// interactive REPL. Profiles created from this device are remembered locally;
// one of them is the active profile shown by the "me" command. Reads go
// through a short-lived cache so a previously seen profile appears instantly
// while a fresh copy is fetched in the same call.
//
// Key features:
//   - Register / update / delete matrimonial profiles (multipart uploads
//     with progress)
//   - View the active profile or all profiles registered from this device
//   - Switch the active profile and force a refresh
//   - Admin login with a local development fallback, plus a searchable,
//     paginated listing of every profile
//   - Selectable biodata layouts for display and printing
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
