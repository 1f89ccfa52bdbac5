package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var driveFilePath = regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`)

// ImageViewURL turns a Drive share link into a direct view link. Data URLs
// and links it does not recognise are returned unchanged.
func ImageViewURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return raw
	}
	if !strings.Contains(raw, "drive.google.com") {
		return raw
	}
	if m := driveFilePath.FindStringSubmatch(raw); m != nil {
		return driveViewURL(m[1])
	}
	if u, err := url.Parse(raw); err == nil {
		if id := u.Query().Get("id"); id != "" {
			return driveViewURL(id)
		}
	}
	return raw
}

func driveViewURL(id string) string {
	return "https://drive.google.com/uc?export=view&id=" + url.QueryEscape(id)
}
