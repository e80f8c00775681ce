package helpers

import (
	"encoding/base64"
	"errors"
	"strings"
)

// DecodeImagePayload decodes an inline image sent in a JSON body. Accepts a
// bare base64 string or a data URI ("data:image/png;base64,....").
func DecodeImagePayload(payload string) ([]byte, error) {
	s := strings.TrimSpace(payload)
	if s == "" {
		return nil, errors.New("empty image payload")
	}
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, errors.New("malformed data uri")
		}
		s = s[idx+1:]
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// some clients strip padding
		return base64.RawStdEncoding.DecodeString(s)
	}
	return b, nil
}
