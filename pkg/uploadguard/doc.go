// Package uploadguard decides whether an uploaded file may be processed
// further, based on its declared MIME type and size.
//
//	file := uploadguard.FileFromHeader(header)
//	if !uploadguard.ValidateFile(file, uploadguard.DefaultPolicy()) {
//	    // reject
//	}
//
// ValidateFile enforces exactly two rules, in order: the MIME type must be
// in AllowedMimeTypes, and Size must not exceed MaxSizeBytes. Other Policy
// fields (extensions, malware scanning, quarantine, signature and dimension
// checks, metadata stripping, filename sanitization) are carried as
// configuration and are not evaluated here.
//
// Check returns the failing rule as an error for callers that need to tell
// the user why a file was rejected.
package uploadguard
