package menu

import "strings"

// TokenSet is a parsed whitespace-separated token list. The empty set
// addresses every item.
type TokenSet []string

// ParseTokens splits list on whitespace, dropping duplicates while keeping
// first-seen order.
func ParseTokens(list string) TokenSet {
	fields := strings.Fields(list)
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	set := make(TokenSet, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		set = append(set, f)
	}
	return set
}

// Empty reports whether the set holds no tokens.
func (s TokenSet) Empty() bool {
	return len(s) == 0
}

// Contains reports whether tok is listed.
func (s TokenSet) Contains(tok string) bool {
	for _, t := range s {
		if t == tok {
			return true
		}
	}
	return false
}

// Matches reports whether an item tagged tok is addressed by the set. The
// empty set matches every item; untagged items only match the empty set.
func (s TokenSet) Matches(tok string) bool {
	if s.Empty() {
		return true
	}
	if tok == "" {
		return false
	}
	return s.Contains(tok)
}

func (s TokenSet) String() string {
	return strings.Join(s, " ")
}
