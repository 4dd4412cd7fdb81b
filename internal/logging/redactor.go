package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	keySeparators = regexp.MustCompile(`[^a-z0-9]+`)

	// sensitiveWords are matched against whole key segments, so "access_token"
	// is redacted and "shop_id" is not.
	sensitiveWords = map[string]struct{}{
		"secret": {}, "password": {}, "token": {}, "key": {}, "auth": {},
		"authorization": {}, "bearer": {}, "credential": {}, "cookie": {}, "session": {},
	}
)

// redactPairs returns a copy of key-value pairs with the values of sensitive
// keys replaced.
func redactPairs(pairs []any) []any {
	out := make([]any, len(pairs))
	copy(out, pairs)
	for i := 0; i+1 < len(out); i += 2 {
		if key, ok := out[i].(string); ok && sensitiveKey(key) {
			out[i+1] = redacted
		}
	}
	return out
}

func sensitiveKey(key string) bool {
	for _, part := range keySeparators.Split(strings.ToLower(key), -1) {
		if _, ok := sensitiveWords[part]; ok {
			return true
		}
	}
	return false
}
