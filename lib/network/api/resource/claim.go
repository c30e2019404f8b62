package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"github.com/mutualnet/mutualpool/lib/pool"
)

type Claim struct {
	c *pool.Claim
}

func NewClaim(c *pool.Claim) *Claim {
	r := &Claim{
		c: c,
	}
	return r
}

func (r Claim) GetMap() hal.Entry {
	return hal.Entry{
		"id":            r.c.ID,
		"claimant":      r.c.Claimant,
		"amount":        r.c.Amount,
		"evidence":      r.c.Evidence,
		"settled":       r.c.Settled,
		"votes_for":     r.c.VotesFor,
		"votes_against": r.c.VotesAgainst,
	}
}

func (r Claim) Resource() *hal.Resource {
	hr := hal.NewResource(r, r.LinkSelf())
	hr.AddLink("votes", hal.NewLink(r.LinkSelf()+"/votes"))
	hr.AddLink("pool", hal.NewLink(URLPool))
	return hr
}

func (r Claim) LinkSelf() string {
	return strings.Replace(URLClaim, "{id}", strconv.FormatUint(r.c.ID, 10), -1)
}
