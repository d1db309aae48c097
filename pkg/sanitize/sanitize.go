package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.StrictPolicy()

// Text strips all HTML from user-supplied text before it is stored.
func Text(input string) string {
	return policy.Sanitize(input)
}
