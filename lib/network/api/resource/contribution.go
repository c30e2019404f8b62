package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"github.com/mutualnet/mutualpool/lib/pool"
)

type Contribution struct {
	c *pool.Contribution
}

func NewContribution(c *pool.Contribution) *Contribution {
	r := &Contribution{
		c: c,
	}
	return r
}

func (r Contribution) GetMap() hal.Entry {
	return hal.Entry{
		"id":      r.c.Address,
		"address": r.c.Address,
		"balance": r.c.Balance,
	}
}

func (r Contribution) Resource() *hal.Resource {
	hr := hal.NewResource(r, r.LinkSelf())
	hr.AddLink("pool", hal.NewLink(URLPool))
	return hr
}

func (r Contribution) LinkSelf() string {
	return strings.Replace(URLContribution, "{id}", r.c.Address, -1)
}
