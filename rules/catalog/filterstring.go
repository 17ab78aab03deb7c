package catalog

import (
	"fmt"
	"strings"

	"nock-and-loose/server/internal/combat"
)

// parseFilterGroup turns one keyword filter string into a FilterGroup. The
// string is a whitespace- or comma-separated list of domain-prefixed filters,
// e.g. "A:ActorTypeNPC E:ArmorHeavy+-ArmorShield".
func parseFilterGroup(value string) (combat.FilterGroup, error) {
	var group combat.FilterGroup
	for _, token := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}) {
		filter, err := parseKeywordFilter(token)
		if err != nil {
			return combat.FilterGroup{}, err
		}
		group.Filters = append(group.Filters, filter)
	}
	if len(group.Filters) == 0 {
		return combat.FilterGroup{}, fmt.Errorf("empty keyword filter")
	}
	return group, nil
}

func parseKeywordFilter(token string) (combat.KeywordFilter, error) {
	domainPart, keywordPart, ok := strings.Cut(token, ":")
	if !ok {
		return combat.KeywordFilter{}, fmt.Errorf("keyword filter %q missing domain prefix", token)
	}

	var domain combat.FilterDomain
	switch domainPart {
	case "A":
		domain = combat.DomainActor
	case "E":
		domain = combat.DomainEquipment
	case "M":
		domain = combat.DomainEffect
	case "S":
		domain = combat.DomainSource
	default:
		return combat.KeywordFilter{}, fmt.Errorf("unknown keyword domain %q in %q", domainPart, token)
	}

	filter := combat.KeywordFilter{Domain: domain}
	for _, keyword := range strings.Split(keywordPart, "+") {
		negate := false
		if strings.HasPrefix(keyword, "-") {
			negate = true
			keyword = keyword[1:]
		}
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return combat.KeywordFilter{}, fmt.Errorf("empty keyword in %q", token)
		}
		filter.Predicates = append(filter.Predicates, combat.KeywordPredicate{Keyword: keyword, Negate: negate})
	}
	return filter, nil
}

// parseFilterGroups parses one group per input string.
func parseFilterGroups(values []string) ([]combat.FilterGroup, error) {
	if len(values) == 0 {
		return nil, nil
	}
	groups := make([]combat.FilterGroup, 0, len(values))
	for _, value := range values {
		group, err := parseFilterGroup(value)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
