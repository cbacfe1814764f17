// Package filestore reads and writes project containers on the local
// filesystem.
//
// Writes are atomic: data goes to a temporary file in the destination
// directory which is then renamed over the target, so a crash never leaves
// a truncated project behind. When backups are enabled an existing target
// is first copied to <target>.bak.
//
// Operations are retried with capped exponential backoff when the
// filesystem reports a transient error (stale NFS handle, EAGAIN, EBUSY),
// which is common when projects live on network shares.
package filestore
