package token

var keywords = map[string]Kind{
	"let": KwLet,
}

// LookupKeyword returns the keyword kind for an exact, case-sensitive match.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}
