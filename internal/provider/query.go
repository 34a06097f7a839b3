package provider

import (
	"strings"

	"github.com/genricoloni/wallsync/internal/domain"
)

// Sorting values accepted by the search endpoint
const (
	SortRandom    = "random"
	SortRelevance = "relevance"
	SortDateAdded = "date_added"
	SortToplist   = "toplist"
)

// Order values accepted by the search endpoint
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// CategoryBits encodes categories as a bit string in [general, anime, people] order.
// An empty selection means every category.
func CategoryBits(c domain.Categories) string {
	if !c.General && !c.Anime && !c.People {
		c = domain.AllCategories()
	}
	return bit(c.General) + bit(c.Anime) + bit(c.People)
}

// PurityBits encodes the content-rating filter in [safe, sketchy, unsafe] order
func PurityBits(f domain.NsfwFilter) string {
	switch f {
	case domain.NsfwAllowed:
		return "111"
	case domain.NsfwOnly:
		return "001"
	default:
		return "100"
	}
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// QueryBias rewrites the free-text query before it is sent.
//
// Asking the provider for unsafe-only content with an empty query tends to
// return nothing, so the default bias adds terms that usually match. This is a
// provider-specific heuristic; swap it out for other providers.
type QueryBias interface {
	Apply(text string, filter domain.NsfwFilter) string
}

// TermBias appends fixed terms when the filter is NsfwOnly
type TermBias struct {
	Terms []string
}

// Apply implements QueryBias
func (b TermBias) Apply(text string, filter domain.NsfwFilter) string {
	if filter != domain.NsfwOnly || len(b.Terms) == 0 {
		return text
	}
	parts := make([]string, 0, len(b.Terms)+1)
	if t := strings.TrimSpace(text); t != "" {
		parts = append(parts, t)
	}
	// Only whole words count as already present
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}
	for _, term := range b.Terms {
		if _, ok := words[strings.ToLower(term)]; !ok {
			parts = append(parts, term)
		}
	}
	return strings.Join(parts, " ")
}

// NoBias leaves queries untouched
type NoBias struct{}

// Apply implements QueryBias
func (NoBias) Apply(text string, _ domain.NsfwFilter) string {
	return text
}

// DefaultBias is used unless the client is configured otherwise
var DefaultBias QueryBias = TermBias{Terms: []string{"anime", "women"}}
