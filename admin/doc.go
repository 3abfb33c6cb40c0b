// Package admin assembles a guarded admin subtree (http.Handler) over a tweak store.
//
// You mount the returned handler anywhere in your existing HTTP stack:
//
//	mux := http.NewServeMux()
//	mux.Handle("/-/", http.StripPrefix("/-", admin.New(...)))
//	mux.Handle("/", yourBusinessHandler)
//
// admin is designed for operators. It only outputs text/json (no UI / JS); the handlers
// come from package ops.
//
// # Core rules
//
// Nothing is mounted unless explicitly enabled via EnableXxx options, and every enabled
// capability must have a non-nil Guard. Each capability is identified by its path.
// Invalid configuration (nil Guard, nil store, invalid or duplicated Path) panics at
// assembly time.
//
// Default paths (relative to the mounted admin subtree):
//
// Read endpoints (GET/HEAD):
//   - EnableTweaksSnapshot: "/tweaks"
//   - EnableTweaksLookup:   "/tweaks/lookup"  (?id=)
//
// Write endpoints (POST):
//   - EnableTweaksSet:      "/tweaks/set"     (?id=&value=)
//   - EnableTweaksReset:    "/tweaks/reset"   (?id= optional)
//   - EnableTweaksPerform:  "/tweaks/perform" (?id=)
//
// Write endpoints must specify Access; empty Access denies all writes (fail-closed).
//
// # Guards
//
// Denied requests always respond with HTTP 403. Helpers: DenyAll, AllowAll, Tokens (token
// from a header, default X-Access-Token) and Check (custom fast predicate).
//
// # Example
//
//	read := admin.Tokens([]string{"read-token"})
//	write := admin.Tokens([]string{"write-token"})
//
//	h := admin.New(
//		admin.EnableTweaksSnapshot(admin.TweaksReadSpec{Guard: read, S: tweaks.Store()}),
//		admin.EnableTweaksSet(admin.TweaksWriteSpec{
//			Guard:  write,
//			S:      tweaks.Store(),
//			Access: admin.TweaksAccessSpec{AllowCategories: []string{"Network"}},
//		}),
//	)
package admin
