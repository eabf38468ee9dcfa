package util

import (
	"net/url"
	"strings"
)

// FrontendURL joins base and path and appends query. A trailing slash on
// base and a missing leading slash on path are tolerated.
func FrontendURL(base, path string, query url.Values) string {
	u := strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// IsRedirectSafe reports whether redirectURL is a relative path or an
// absolute http(s) URL on the same host as baseURL.
func IsRedirectSafe(redirectURL, baseURL string) bool {
	if redirectURL == "" {
		return true
	}

	// header injection
	if strings.ContainsAny(redirectURL, "\r\n") {
		return false
	}

	if strings.HasPrefix(redirectURL, "/") {
		return !strings.HasPrefix(redirectURL, "//") && !strings.Contains(redirectURL, "\\")
	}

	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return parsed.Host == base.Host
}
