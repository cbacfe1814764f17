// Package container converts project containers to and from
// domain.ProjectDocument.
//
// A container is gzip-compressed XML. Producers are inconsistent, so Decode
// accepts both the compressed form and plain XML, and Encode falls back to
// plain XML when compression is unavailable. The compression strategy is
// resolved once per process with ResolveStrategy.
package container
