package merchant

import (
	"regexp"
	"strings"
)

// ExtractedTokens carries auxiliary fragments pulled from a raw
// description. They are informational (audit, detail views) and play no
// part in matching.
type ExtractedTokens struct {
	StoreNumber string
	State       string
	Channel     string // "online", "app", or "in-store"
}

var (
	storeNumberRE = regexp.MustCompile(`#(\d{2,6})`)
	stateZipRE    = regexp.MustCompile(`\b([A-Z]{2})\s*\d{5}`)
	onlineRE      = regexp.MustCompile(`\bONLINE\b|\bWEB\b`)
	appRE         = regexp.MustCompile(`\bAPP\b|\bMOBILE\b`)
	inStoreRE     = regexp.MustCompile(`\bPOS\b|\bIN.?STORE\b`)
)

// ExtractTokens pulls store number, state, and purchase channel out of a
// raw description where present.
func ExtractTokens(raw string) ExtractedTokens {
	var tokens ExtractedTokens

	if m := storeNumberRE.FindStringSubmatch(raw); m != nil {
		tokens.StoreNumber = m[1]
	}
	if m := stateZipRE.FindStringSubmatch(raw); m != nil {
		tokens.State = m[1]
	}

	u := strings.ToUpper(raw)
	switch {
	case onlineRE.MatchString(u):
		tokens.Channel = "online"
	case appRE.MatchString(u):
		tokens.Channel = "app"
	case inStoreRE.MatchString(u):
		tokens.Channel = "in-store"
	}
	return tokens
}
