// Package ops provides small, standard-library flavored net/http handlers that expose a tweak
// store to operators.
//
// ops is designed to be mounted into your own routing tree (package admin does that with
// guards). It intentionally:
//   - does not choose routing paths (mount it anywhere),
//   - does not do authn/authz decisions (protect it with your own middleware),
//   - does not start servers or manage process lifecycle.
//
// # Formats
//
// Every handler supports both text and JSON output. By default they render text.
// The default can be configured by WithDefaultFormat, and can be overridden per request by
// URL query:
//   - ?format=text
//   - ?format=json
//
// Text output is line-based and greppable, one field per line:
//
//	tweak	<identifier>	<field>	<value>
//
// Write handlers prefix fields with "old." and "new.". JSON output is structured and
// suitable for tooling.
//
// # Handlers
//
//   - SnapshotHandler: every tweak (GET/HEAD)
//   - LookupHandler: one tweak, ?id= (GET/HEAD)
//   - SetHandler: parse ?value= as the tweak kind and set it, ?id= (POST)
//   - ResetHandler: revert ?id= (or every tweak) to the default (POST)
//   - PerformHandler: run an action tweak, ?id= (POST)
//
// Write errors map to status codes: out of range and unparsable values 400, writes to
// actions 409, unknown tweaks 404, tweaks rejected by a guard 403.
//
// # Security notes
//
// Tweak endpoints change program behavior. Mount these handlers behind your own
// authentication/authorization middleware, and consider restricting write handlers with
// WithAllowCategories / WithAllowIdentifiers.
package ops
