// Package bind keeps a field of an object in sync with a tweak for as long as the object
// lives.
//
//	type dialer struct{ timeout float64 }
//
//	d := &dialer{}
//	b, err := bind.Bind(tw, d, func(d *dialer, v float64) { d.timeout = v })
//
// The binding references the object through a weak pointer and is released automatically
// when the object is collected.
package bind
