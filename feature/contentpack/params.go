package contentpack

import "strings"

// Startup parameter names carrying the content-pack id, in lookup order.
const (
	ParamShort = "cpack"
	ParamLong  = "content_pack"
)

// IDFromParams returns the content-pack id from session startup parameters,
// or "" when neither parameter is set.
func IDFromParams(params map[string]string) string {
	for _, key := range []string{ParamShort, ParamLong} {
		if id := strings.TrimSpace(params[key]); id != "" {
			return id
		}
	}
	return ""
}
