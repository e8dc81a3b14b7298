package epoch

import (
	"fmt"
	"strings"
	"time"
)

// TagPrefix marks tags owned by git-epoch. Removal matches it as a plain string prefix.
const TagPrefix = "git-epoch"

const (
	tagNameSeparatorConstant           = "/"
	tagDateLayoutConstant              = "2006-01-02"
	localTimezoneNameConstant          = "local"
	utcTimezoneNameConstant            = "utc"
	timezoneResolutionTemplateConstant = "unable to resolve timezone %q: %w"
)

// TagNamer derives epoch tag names from commit timestamps in a fixed location.
type TagNamer struct {
	location *time.Location
}

// NewTagNamer constructs a TagNamer. A nil location means the machine's local timezone.
func NewTagNamer(location *time.Location) TagNamer {
	if location == nil {
		location = time.Local
	}
	return TagNamer{location: location}
}

// TagName formats git-epoch/YYYY-MM-DD for the calendar date of timestamp.
func (namer TagNamer) TagName(timestamp time.Time) string {
	location := namer.location
	if location == nil {
		location = time.Local
	}
	return TagPrefix + tagNameSeparatorConstant + timestamp.In(location).Format(tagDateLayoutConstant)
}

// IsEpochTag reports whether tagName belongs to git-epoch.
func IsEpochTag(tagName string) bool {
	return strings.HasPrefix(tagName, TagPrefix)
}

// ResolveLocation maps a configured timezone to a location: "local" (or empty), "UTC", or an IANA name.
func ResolveLocation(timezoneName string) (*time.Location, error) {
	trimmedName := strings.TrimSpace(timezoneName)
	switch strings.ToLower(trimmedName) {
	case "", localTimezoneNameConstant:
		return time.Local, nil
	case utcTimezoneNameConstant:
		return time.UTC, nil
	}

	location, loadError := time.LoadLocation(trimmedName)
	if loadError != nil {
		return nil, fmt.Errorf(timezoneResolutionTemplateConstant, trimmedName, loadError)
	}
	return location, nil
}
