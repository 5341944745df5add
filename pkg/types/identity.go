package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type identifiable interface {
	Identity() string
}

// CanonicalID derives the key used for every overlay lookup and write. Strings
// and numbers are returned as text, documents resolve through their _id or id
// field and anything else yields the empty string.
func CanonicalID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	case *Alert:
		if t == nil {
			return ""
		}
		return t.Identity()
	case identifiable:
		return t.Identity()
	case map[string]any:
		if id := CanonicalID(t["_id"]); id != "" {
			return id
		}
		return CanonicalID(t["id"])
	case map[string]string:
		if id := t["_id"]; id != "" {
			return id
		}
		return t["id"]
	default:
		return ""
	}
}
