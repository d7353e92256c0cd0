package constant

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// UserProfileCacheKey is formatted with the user id.
const UserProfileCacheKey = "user:me:%s"
