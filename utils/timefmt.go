package utils

import (
	"strings"
	"time"
)

// SheetTimestampLayout is DD/MM/YYYY HH:mm:ss, the format of every
// timestamp written to the sheet.
const SheetTimestampLayout = "02/01/2006 15:04:05"

var gatePassDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FormatTimestamp renders t in loc using SheetTimestampLayout.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(SheetTimestampLayout)
}

// NormaliseDate converts a form date to SheetTimestampLayout. Input that
// already matches the layout is kept; unparsable input is returned as is.
func NormaliseDate(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	if _, err := time.ParseInLocation(SheetTimestampLayout, raw, loc); err == nil {
		return raw
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return FormatTimestamp(t, loc)
	}
	for _, layout := range gatePassDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.Format(SheetTimestampLayout)
		}
	}
	return raw
}
