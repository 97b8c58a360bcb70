// Package multipart decodes multipart/form-data request bodies produced by
// browser upload forms into (filename, bytes) parts.
//
// The decoder works on the complete, already length checked body:
//   - the body is split on "--" + boundary;
//   - segments without a Content-Disposition header are framing (preamble,
//     epilogue, the closing "--") and are dropped;
//   - every remaining segment is split once on the blank line into header
//     block and payload, and the CRLF that precedes the next delimiter is
//     removed from the payload;
//   - the filename attribute of the Content-Disposition header names the part.
//     A part without filename is a malformed request, it is never skipped.
//
// Filenames are returned as sent. Callers reduce them to a bare name before
// touching the filesystem (see fsutil.SanitizeFilename).
package multipart
