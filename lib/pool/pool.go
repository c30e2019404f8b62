package pool

import (
	"fmt"
	"sync"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/common/observer"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/metrics"
	"github.com/mutualnet/mutualpool/lib/storage"
	"github.com/mutualnet/mutualpool/lib/transfer"
)

// Pool runs every state-changing operation as one indivisible unit: a
// single mutex serializes operations and each operation mutates storage
// through one transaction, committed only after the whole operation
// (external transfer included) succeeded. A failed transfer discards the
// transaction, so no operation can leave a claim settled without the
// payment having happened, or a balance zeroed without the payout.
type Pool struct {
	sync.Mutex

	st          *storage.LevelDBBackend
	transferrer transfer.Transferrer
	access      *AccessControl
	monitor     *metrics.PoolMetrics
}

// Setup establishes the pool: the administrator identity and the minimum
// contribution are fixed here and immutable afterwards.
func Setup(st *storage.LevelDBBackend, administrator string, minimumContribution common.Amount) error {
	exists, err := ExistsPoolState(st)
	if err != nil {
		return err
	}
	if exists {
		return errors.PoolAlreadyInitialized
	}

	ps := NewPoolState(administrator, minimumContribution)
	if err := ps.Save(st); err != nil {
		return err
	}

	log.Info("pool initialized", "administrator", administrator, "minimum", minimumContribution)

	return nil
}

func NewPool(st *storage.LevelDBBackend, transferrer transfer.Transferrer, monitor *metrics.PoolMetrics) (*Pool, error) {
	ps, err := GetPoolState(st)
	if err != nil {
		return nil, err
	}

	if monitor == nil {
		monitor = metrics.NopPoolMetrics()
	}

	return &Pool{
		st:          st,
		transferrer: transferrer,
		access:      NewAccessControl(ps.Administrator),
		monitor:     monitor,
	}, nil
}

func (p *Pool) AccessControl() *AccessControl {
	return p.access
}

// Deposit credits the contribution of `address` and the pool total. The
// voting power of the address grows from this point forward.
func (p *Pool) Deposit(address string, amount common.Amount) (c *Contribution, err error) {
	p.Lock()
	defer p.Unlock()

	var ts *storage.LevelDBBackend
	if ts, err = p.st.OpenTransaction(); err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var ps *PoolState
	if ps, err = GetPoolState(ts); err != nil {
		return
	}

	if amount < ps.MinimumContribution {
		err = errors.BelowMinimumContribution
		return
	}

	var exists bool
	if exists, err = ExistsContribution(ts, address); err != nil {
		return
	}
	if exists {
		if c, err = GetContribution(ts, address); err != nil {
			return
		}
	} else {
		c = NewContribution(address, common.Amount(0))
	}

	if err = c.Deposit(amount); err != nil {
		return
	}
	if ps.Total, err = ps.Total.Add(amount); err != nil {
		return
	}

	if err = c.Save(ts); err != nil {
		return
	}
	if err = ps.Save(ts); err != nil {
		return
	}

	if err = ts.Commit(); err != nil {
		return
	}

	p.monitor.DepositsTotal.Add(1)
	p.monitor.SetPoolTotal(uint64(ps.Total))
	observer.ContributionObserver.Trigger(contributionEvent(c.Address), c)

	log.Debug("deposit accepted", "address", address, "amount", amount, "total", ps.Total)

	return
}

// Withdraw zeroes the balance of `address`, decrements the pool total and
// only then hands the amount to the transfer backend. The ledger mutation
// strictly precedes the external transfer; if the transfer fails the
// transaction is discarded and the balance is untouched.
func (p *Pool) Withdraw(address string) (amount common.Amount, err error) {
	p.Lock()
	defer p.Unlock()

	var ts *storage.LevelDBBackend
	if ts, err = p.st.OpenTransaction(); err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var ps *PoolState
	if ps, err = GetPoolState(ts); err != nil {
		return
	}

	var exists bool
	if exists, err = ExistsContribution(ts, address); err != nil {
		return
	}
	if !exists {
		err = errors.NoContributionToWithdraw
		return
	}

	var c *Contribution
	if c, err = GetContribution(ts, address); err != nil {
		return
	}
	if c.GetBalance() <= 0 {
		err = errors.NoContributionToWithdraw
		return
	}

	amount = c.GetBalance()
	if err = c.Withdraw(amount); err != nil {
		return
	}
	if ps.Total, err = ps.Total.Sub(amount); err != nil {
		return
	}

	if err = c.Save(ts); err != nil {
		return
	}
	if err = ps.Save(ts); err != nil {
		return
	}

	if err = p.transfer(address, amount); err != nil {
		return
	}

	if err = ts.Commit(); err != nil {
		return
	}

	p.monitor.WithdrawalsTotal.Add(1)
	p.monitor.SetPoolTotal(uint64(ps.Total))
	observer.ContributionObserver.Trigger(contributionEvent(c.Address), c)

	log.Debug("withdrawal settled", "address", address, "amount", amount, "total", ps.Total)

	return
}

// FileClaim allocates the next claim id and stores a new open claim with
// zero tallies. Only the administrator may file; the requested amount must
// not exceed the current pool total.
func (p *Pool) FileClaim(caller, claimant string, amount common.Amount, evidence string) (id uint64, err error) {
	p.Lock()
	defer p.Unlock()

	var ts *storage.LevelDBBackend
	if ts, err = p.st.OpenTransaction(); err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	if !p.access.IsAdministrator(caller) {
		err = errors.NotAdministrator
		return
	}

	var ps *PoolState
	if ps, err = GetPoolState(ts); err != nil {
		return
	}

	if amount <= 0 || amount > ps.Total {
		err = errors.InvalidClaimAmount
		return
	}

	id = ps.NextClaimID
	ps.NextClaimID++

	claim := NewClaim(id, claimant, amount, evidence)
	if err = claim.Save(ts); err != nil {
		return
	}
	if err = ps.Save(ts); err != nil {
		return
	}

	if err = ts.Commit(); err != nil {
		return
	}

	p.monitor.ClaimsFiled.Add(1)
	p.monitor.OpenClaims.Add(1)

	log.Info("claim filed", "id", id, "claimant", claimant, "amount", amount)

	return
}

// Vote records one weighted vote. The weight is the voter's ledger balance
// read at the moment of the call, not a snapshot from filing time; the
// threshold likewise uses the live pool total. Crossing the threshold
// resolves the claim synchronously within the same operation.
func (p *Pool) Vote(claimID uint64, voter string, support bool) (claim *Claim, err error) {
	p.Lock()
	defer p.Unlock()

	var ts *storage.LevelDBBackend
	if ts, err = p.st.OpenTransaction(); err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	if claim, err = GetClaim(ts, claimID); err != nil {
		return
	}
	if claim.Settled {
		err = errors.ClaimAlreadySettled
		return
	}

	var isContributor bool
	if isContributor, err = p.access.IsContributor(ts, voter); err != nil {
		return
	}
	if !isContributor {
		err = errors.NotContributor
		return
	}

	if claim.HasVoted(voter) {
		err = errors.AlreadyVoted
		return
	}
	if voter == claim.Claimant {
		err = errors.SelfVoteForbidden
		return
	}

	var c *Contribution
	if c, err = GetContribution(ts, voter); err != nil {
		return
	}
	weight := c.GetBalance()

	if err = claim.RecordVote(voter, support, weight); err != nil {
		return
	}
	if err = claim.Save(ts); err != nil {
		return
	}

	var ps *PoolState
	if ps, err = GetPoolState(ts); err != nil {
		return
	}

	settled := false
	if ps.ThresholdReached(claim.VotesFor) {
		if err = p.settle(ts, claim); err != nil {
			return
		}
		settled = true
	}

	if err = ts.Commit(); err != nil {
		return
	}

	p.monitor.VotesTotal.With("support", fmt.Sprintf("%v", support)).Add(1)
	if settled {
		p.monitor.PayoutsTotal.Add(1)
		p.monitor.OpenClaims.Add(-1)
		observer.ClaimObserver.Trigger("settled", claim)
	}

	log.Debug("vote recorded",
		"claim", claimID, "voter", voter, "support", support,
		"weight", weight, "settled", settled,
	)

	return
}

// Resolve settles an approved claim. Anyone may call it; the threshold is
// recomputed against the current tallies and the current pool total, which
// makes a stale resolution attempt fail instead of paying out.
func (p *Pool) Resolve(claimID uint64) (claim *Claim, err error) {
	p.Lock()
	defer p.Unlock()

	var ts *storage.LevelDBBackend
	if ts, err = p.st.OpenTransaction(); err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	if claim, err = GetClaim(ts, claimID); err != nil {
		return
	}
	if claim.Settled {
		err = errors.ClaimAlreadySettled
		return
	}

	var ps *PoolState
	if ps, err = GetPoolState(ts); err != nil {
		return
	}

	if !ps.ThresholdReached(claim.VotesFor) {
		err = errors.ThresholdNotMet
		return
	}

	if err = p.settle(ts, claim); err != nil {
		return
	}

	if err = ts.Commit(); err != nil {
		return
	}

	p.monitor.PayoutsTotal.Add(1)
	p.monitor.OpenClaims.Add(-1)
	observer.ClaimObserver.Trigger("settled", claim)

	log.Info("claim settled", "claim", claimID, "claimant", claim.Claimant, "amount", claim.Amount)

	return
}

// settle marks the claim settled before issuing the transfer. Both live in
// the same not-yet-committed transaction, so a transfer failure unwinds the
// settled flag together with everything else.
func (p *Pool) settle(ts *storage.LevelDBBackend, claim *Claim) (err error) {
	claim.Settled = true
	if err = claim.Save(ts); err != nil {
		return
	}

	if err = p.transfer(claim.Claimant, claim.Amount); err != nil {
		return
	}

	return
}

func (p *Pool) transfer(address string, amount common.Amount) error {
	if err := p.transferrer.Transfer(address, amount); err != nil {
		if e, ok := err.(*errors.Error); ok && e.Code == errors.TransferFailed.Code {
			return err
		}
		return errors.TransferFailed.Clone().SetData("error", err.Error())
	}

	return nil
}

// BalanceOf returns the current contribution balance; unknown addresses
// hold zero.
func (p *Pool) BalanceOf(address string) (common.Amount, error) {
	exists, err := ExistsContribution(p.st, address)
	if err != nil || !exists {
		return common.Amount(0), err
	}

	c, err := GetContribution(p.st, address)
	if err != nil {
		return common.Amount(0), err
	}

	return c.GetBalance(), nil
}

// Total returns the current pool total.
func (p *Pool) Total() (common.Amount, error) {
	ps, err := GetPoolState(p.st)
	if err != nil {
		return common.Amount(0), err
	}

	return ps.Total, nil
}

func (p *Pool) GetClaim(id uint64) (*Claim, error) {
	return GetClaim(p.st, id)
}

func (p *Pool) State() (*PoolState, error) {
	return GetPoolState(p.st)
}

func (p *Pool) Storage() *storage.LevelDBBackend {
	return p.st
}

func contributionEvent(address string) string {
	return fmt.Sprintf("saved address-%s", address)
}
