// Package manifest loads relocation tables produced by the asset copy step.
//
// Supported formats are chosen by file extension:
//
//   - .json  an array of entries, or {"relocations": [...]}
//   - .yaml, .yml  same shapes as JSON
//   - .toml  [[relocations]] tables
//   - .csv   two columns, original then destination, optional header row
//
// Entries may use original_path/destination_path or the shorter
// original/destination keys emitted by copy tools.
package manifest
