// Package schema describes REST-backed tools: their parameters, the remote
// call each one forwards to, and the semantic types used to coerce
// arguments and parse responses.
package schema
