// Package writers turns detection catalogues into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV, JSON, JSONL).
//   - The deblending core stays domain-only; the generator stays
//     orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
