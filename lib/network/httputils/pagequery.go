package httputils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/network/api/resource"
	"github.com/mutualnet/mutualpool/lib/storage"
)

const DefaultMaxLimit uint64 = 100

type PageQuery struct {
	request *http.Request
	cursor  string
	reverse bool
	limit   uint64
}

func NewPageQuery(r *http.Request) (*PageQuery, error) {
	p := &PageQuery{
		request: r,
		limit:   DefaultMaxLimit,
	}
	if err := p.parseRequest(); err != nil {
		return nil, err
	}
	if p.limit > DefaultMaxLimit {
		return nil, errors.PageQueryLimitMaxExceed
	}
	return p, nil
}

func (p *PageQuery) Limit() uint64 {
	return p.limit
}

func (p *PageQuery) Reverse() bool {
	return p.reverse
}

func (p *PageQuery) Cursor() string {
	return p.cursor
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) PrevLink(cursor string) string {
	path := p.request.URL.Path
	query := p.urlValues(cursor, true).Encode()
	return fmt.Sprintf("%s?%s", path, query)
}

func (p *PageQuery) NextLink(cursor string) string {
	path := p.request.URL.Path
	query := p.urlValues(cursor, false).Encode()
	return fmt.Sprintf("%s?%s", path, query)
}

func (p *PageQuery) WalkOption() *storage.WalkOption {
	return storage.NewWalkOption(p.Cursor(), p.Limit(), p.Reverse())
}

func (p *PageQuery) ResourceList(rs []resource.Resource, cursor string) *resource.ResourceList {
	return resource.NewResourceList(rs, p.SelfLink(), p.NextLink(cursor), p.PrevLink(cursor))
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	r := q.Get("reverse")
	if r != "" {
		reverse, err := common.ParseBoolQueryString(r)
		if err != nil {
			return err
		}
		p.reverse = reverse
	}
	c := q.Get("cursor")
	if c != "" {
		p.cursor = c
	}

	l := q.Get("limit")
	if l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil {
			return err
		}
		p.limit = limit
	}
	return nil
}

func (p PageQuery) urlValues(cursor string, reverse bool) url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(reverse)},
	}

	if len(cursor) > 0 {
		v.Set("cursor", cursor)
	}
	if p.limit > 0 {
		v.Set("limit", strconv.FormatUint(p.limit, 10))
	}

	return v
}
