package keys

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

const (
	// PfxMetadata is used for prefixing resolved metadata documents
	PfxMetadata = "metadata"
	// PfxLikes is used for prefixing listing like counters
	PfxLikes = "likes"
)

// SHA256 hashes the data with sha256
func SHA256(data string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(data)))
}

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts at most the first two components of a key, used as a
// low cardinality metric tag.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join(s[:2], ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
