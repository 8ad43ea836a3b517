package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// DecodeJSON decodes the request body into target.
func DecodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// QueryInt reads an integer query parameter, returning def when it is absent.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// RequiredQueryInt is QueryInt for parameters without a default.
func RequiredQueryInt(r *http.Request, key string) (int, error) {
	if strings.TrimSpace(r.URL.Query().Get(key)) == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	return QueryInt(r, key, 0)
}
