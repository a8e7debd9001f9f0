package site

import "github.com/microcosm-cc/bluemonday"

// NewSanitizer returns the policy applied to body HTML when sanitising is
// enabled: user-generated-content rules plus the class and id attributes the
// body markup and the stylesheet rely on.
func NewSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	return p
}
