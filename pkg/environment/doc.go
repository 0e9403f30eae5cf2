// Package environment names the deployment environment and carries it
// through request contexts. The booking handlers use it to decide whether
// error pages may show internal details.
package environment
