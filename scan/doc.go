// Package scan discovers tweak declarations and materializes them into a store.
//
// Declarations are plain Records appended to a process-wide table, usually from package
// init functions:
//
//	func init() {
//		scan.Declare(scan.Record{
//			Category: "Network", Collection: "Timeouts", Name: "Connect Timeout",
//			Value: 5.0, Bounds: [2]any{1.0, 30.0}, Signature: scan.SigDouble,
//		})
//	}
//
// The first Scan of a Scanner walks the table once and creates the matching categories,
// collections and tweaks. A record with an unknown signature, or a payload that does not
// match its signature, is logged and skipped. When two different declarations share an
// identifier the first one wins and the conflict is reported.
package scan
