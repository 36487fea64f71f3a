// Package result defines the JSON document Scribe emits on stdout and the
// normalization rules every backend adapter funnels through.
//
// The document shape is the contract with the host application: one document
// per run, status "success" or "error", segments ordered chronologically with
// dense zero-based ids. Backends produce heterogeneous output; Normalize is
// the single place that reshapes it into this schema.
package result
