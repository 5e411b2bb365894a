package services

import (
	"strconv"
	"strings"

	"taskboard/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	// MaxLimit caps caller-supplied page sizes; unbounded limits would let a
	// single request pull an arbitrarily large result set.
	MaxLimit = 100
)

var defaultSort = models.SortField{Field: "createdAt", Desc: true}

// BuildListQuery normalizes raw request parameters into a query descriptor.
// It is a pure function: garbage input degrades to defaults, never to an
// error. The owner predicate is not its concern; the repository conjoins
// that unconditionally.
func BuildListQuery(p models.ListParams) models.ListQuery {
	page := parsePositive(p.Page, defaultPage)
	limit := parsePositive(p.Limit, defaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return models.ListQuery{
		Search: strings.TrimSpace(p.Search),
		Status: p.Status,
		Offset: (page - 1) * limit,
		Limit:  limit,
		Sort:   parseSort(p.Sort),
	}
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// parseSort accepts "field" or "-field" for descending. Anything outside the
// whitelist falls back to newest-first.
func parseSort(raw string) models.SortField {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultSort
	}
	desc := false
	if strings.HasPrefix(raw, "-") {
		desc = true
		raw = raw[1:]
	}
	switch raw {
	case "createdAt", "dueDate", "title", "priority":
		return models.SortField{Field: raw, Desc: desc}
	}
	return defaultSort
}
