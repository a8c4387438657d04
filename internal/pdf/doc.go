// Package pdf implements a minimal immutable PDF object graph: enough
// of the format to parse a document into an arena of indirect objects,
// replace or append objects, and serialise the arena back to bytes.
//
// The parser locates indirect objects by scanning the file rather than
// trusting the cross-reference table, which tolerates the slightly
// damaged files real archives accumulate. Re-serialisation regenerates
// the cross-reference table; stream payloads pass through untouched, so
// page content is byte-identical across a parse/write cycle.
//
// Limitations: objects packed inside object streams (/Type /ObjStm) and
// encrypted documents are not supported, and generation numbers are
// normalised to zero on output.
package pdf
