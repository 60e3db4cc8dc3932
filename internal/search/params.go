package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// URL query parameters shared by the search box and the invoice list.
const (
	PageParam  = "page"
	QueryParam = "query"
)

// MaxPage bounds the page number so the row offset cannot overflow.
const MaxPage = math.MaxInt32

// ListParams is the parsed search state of the invoice list URL.
type ListParams struct {
	Query string
	Page  int
}

// ParseListParams reads query and page. Missing, malformed or non-positive pages
// become 1 and pages past MaxPage become MaxPage.
func ParseListParams(values url.Values) ListParams {
	page := 1
	if raw := values.Get(PageParam); raw != "" {
		if p, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && p > 0 {
			page = min(p, MaxPage)
		}
	}
	return ListParams{
		Query: values.Get(QueryParam),
		Page:  page,
	}
}

// Encode renders the params in the same shape the synchronizer writes.
func (p ListParams) Encode() string {
	values := url.Values{}
	values.Set(PageParam, strconv.Itoa(p.Page))
	if p.Query != "" {
		values.Set(QueryParam, p.Query)
	}
	return values.Encode()
}

// ApplySearchTerm returns a copy of current with page reset to 1 and query set to
// term, or removed when term is empty. Other parameters are preserved.
func ApplySearchTerm(current url.Values, term string) url.Values {
	next := url.Values{}
	for k, v := range current {
		next[k] = append([]string(nil), v...)
	}
	next.Set(PageParam, "1")
	if term != "" {
		next.Set(QueryParam, term)
	} else {
		next.Del(QueryParam)
	}
	return next
}
