package design

import (
	"strings"

	"github.com/alexiusacademia/gorcd/internal/code"
)

// Member identifies a member type calculator.
type Member string

const (
	Column        Member = "column"
	Beam          Member = "beam"
	Slab          Member = "slab"
	Footing       Member = "foundation"
	RetainingWall Member = "retaining-wall"
)

var memberAliases = map[string]Member{
	"column":         Column,
	"beam":           Beam,
	"slab":           Slab,
	"foundation":     Footing,
	"footing":        Footing,
	"retaining-wall": RetainingWall,
	"wall":           RetainingWall,
}

// Members lists the supported member types.
func Members() []Member {
	return []Member{Column, Beam, Slab, Footing, RetainingWall}
}

// ParseMember converts a user supplied name into a Member.
func ParseMember(s string) (Member, error) {
	if m, ok := memberAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	names := make([]string, 0, len(Members()))
	for _, m := range Members() {
		names = append(names, string(m))
	}
	return "", &code.ConfigurationError{Kind: "member type", Value: s, Supported: names}
}
