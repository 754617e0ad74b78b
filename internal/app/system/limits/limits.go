// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxJSONBody bounds any JSON request body. The largest legitimate
	// payload is a contact message of 1000 characters plus its other fields.
	MaxJSONBody = 64 << 10 // 64 KB
)
