// internal/app/system/limits/limits.go
package limits

// Request body size limits. These keep oversized requests from
// exhausting memory; attachment storage is delegated to the storage
// backend.
const (
	// MaxJSONBodySize bounds JSON request bodies on CRUD endpoints.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxChatMessageForm is the in-memory budget handed to
	// ParseMultipartForm for chat message posts; larger attachment
	// parts spill to temporary files.
	MaxChatMessageForm = 10 << 20 // 10 MB

	// MaxMessageTextLen bounds the text of a single chat message.
	MaxMessageTextLen = 4000
)
