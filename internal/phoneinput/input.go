// Package phoneinput holds the phone number the user typed. It tidies the
// value into E.164 when it can but never refuses input: whether a number is
// usable is decided at submission time, and only by emptiness.
package phoneinput

import (
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

const DefaultRegion = "US"

type Input struct {
	mu     sync.RWMutex
	region string
	value  string
}

// New returns an empty input that interprets national numbers in region.
func New(region string) *Input {
	if region == "" {
		region = DefaultRegion
	}
	return &Input{region: strings.ToUpper(region)}
}

// Set stores raw, normalised to E.164 when it parses, and returns the stored value.
func (in *Input) Set(raw string) string {
	v := Normalize(raw, in.region)
	in.mu.Lock()
	in.value = v
	in.mu.Unlock()
	return v
}

func (in *Input) Value() string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.value
}

func (in *Input) Region() string { return in.region }

// Display returns the stored value in international format.
func (in *Input) Display() string {
	return Display(in.Value(), in.region)
}

// Normalize trims raw and converts it to E.164 if it parses for region.
// Unparseable input is returned trimmed.
func Normalize(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// Display renders value in international format for showing back to the user.
func Display(value, region string) string {
	if value == "" {
		return ""
	}
	num, err := phonenumbers.Parse(value, region)
	if err != nil {
		return value
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
