package resource

import (
	"github.com/nvellon/hal"

	"github.com/mutualnet/mutualpool/lib/pool"
)

type Pool struct {
	ps *pool.PoolState
}

func NewPool(ps *pool.PoolState) *Pool {
	r := &Pool{
		ps: ps,
	}
	return r
}

func (r Pool) GetMap() hal.Entry {
	return hal.Entry{
		"administrator":        r.ps.Administrator,
		"minimum_contribution": r.ps.MinimumContribution,
		"threshold":            r.ps.Threshold,
		"total":                r.ps.Total,
	}
}

func (r Pool) Resource() *hal.Resource {
	hr := hal.NewResource(r, r.LinkSelf())
	hr.AddLink("contributions", hal.NewLink(URLContributions+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	hr.AddLink("claims", hal.NewLink(URLClaims+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	return hr
}

func (r Pool) LinkSelf() string {
	return URLPool
}
