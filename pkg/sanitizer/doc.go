// Package sanitizer normalises visitor input before it leaves the form.
//
// Functions share the signature func(string) string so they can be chained
// with Apply or stored as a pipeline with Compose:
//
//	name := sanitizer.Compose(sanitizer.StripHTML, sanitizer.CollapseSpace)
//	name("  <b>Jane</b>   Doe ") // "Jane Doe"
//
// StripHTML uses the bluemonday strict policy.
package sanitizer
