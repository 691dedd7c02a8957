package utils

import (
	"net/http"
)

// DetectMimeType returns the MIME type sniffed from the provided content sample
// using http.DetectContentType. The sample should be the leading bytes of the
// file; an empty sample yields "text/plain; charset=utf-8" per the sniffing
// algorithm, which callers treat as the empty-file placeholder type.
func DetectMimeType(sample []byte) string {
	return http.DetectContentType(sample)
}
