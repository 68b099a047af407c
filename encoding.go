package imgcat

import (
	"encoding/base64"
)

// DefaultChunkSize is the iTerm2 multipart chunk size used by the CLI when
// chunking is enabled without an explicit size.
const DefaultChunkSize = 0x40000 // 256KB

// appendBase64 appends the standard base64 encoding of src to dst.
func appendBase64(dst, src []byte) []byte {
	return base64.StdEncoding.AppendEncode(dst, src)
}
