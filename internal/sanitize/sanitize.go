// Package sanitize strips markup from free-text fields (names, locations,
// session labels) before they are stored. The dashboard renders these values
// directly, so no HTML is ever allowed through.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// angleStripper drops brackets that decoding escaped entities can produce.
var angleStripper = strings.NewReplacer("<", "", ">", "")

// Text removes every HTML element, collapses runs of whitespace, and trims
// the result. Entities produced by the policy are decoded back so "O'Neil"
// and "A & B" survive unchanged.
func Text(input string) string {
	clean := angleStripper.Replace(html.UnescapeString(getPolicy().Sanitize(input)))
	return strings.Join(strings.Fields(clean), " ")
}
