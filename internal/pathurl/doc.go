// Package pathurl converts between file system paths and the file URL form
// used inside project documents, and builds the normalised lookup used to
// match project paths against relocated files.
//
// The URL form is what editors write into pathurl attributes:
//
//	/Users/a/My Clip.mov       <->  file://localhost/Users/a/My%20Clip.mov
//	C:/Media/clip.mov          <->  file://localhost/C:/Media/clip.mov
//
// Decode(Encode(p)) == p holds for absolute POSIX and drive-letter paths
// written with forward slashes.
package pathurl
