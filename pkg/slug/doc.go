// Package slug turns titles into URL path segments.
//
//	slug.Make("Kedārnāth Yatra & Trek") // "kedarnath-yatra-trek"
//
// Diacritics are folded to ASCII; every other run of non-alphanumeric
// characters becomes one separator.
package slug
