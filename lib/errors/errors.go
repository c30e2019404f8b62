package errors

import (
	stderrors "errors"
)

// New is a passthrough to the standard library's errors.New, so that
// callers importing this package do not need a second errors import.
var New = stderrors.New

var (
	StorageRecordDoesNotExist    = NewError(100, "record does not exist in storage")
	StorageRecordAlreadyExists   = NewError(101, "record already exists in storage")
	StorageCoreError             = NewError(102, "storage error")
	StorageConfigInvalid         = NewError(103, "invalid storage configuration")
	NotAdministrator             = NewError(110, "caller is not the administrator")
	NotContributor               = NewError(111, "caller is not a contributor")
	BelowMinimumContribution     = NewError(112, "contribution is below the minimum")
	InvalidClaimAmount           = NewError(113, "claim amount is invalid")
	ClaimNotFound                = NewError(114, "claim not found")
	ClaimAlreadySettled          = NewError(115, "claim is already settled")
	AlreadyVoted                 = NewError(116, "already voted on this claim")
	SelfVoteForbidden            = NewError(117, "claimant cannot vote on own claim")
	ThresholdNotMet              = NewError(118, "approval threshold not met")
	NoContributionToWithdraw     = NewError(119, "no contribution to withdraw")
	TransferFailed               = NewError(120, "value transfer failed")
	MaximumBalanceReached        = NewError(121, "maximum pool balance reached")
	ContributionBalanceUnderZero = NewError(122, "contribution balance would go under zero")
	BadRequestParameter          = NewError(123, "request parameter is not valid")
	InvalidAddress               = NewError(124, "address is not valid")
	PoolNotInitialized           = NewError(125, "pool is not initialized")
	PoolAlreadyInitialized       = NewError(126, "pool is already initialized")
	PageQueryLimitMaxExceed      = NewError(127, "limit exceeds maximum allowed")
	InvalidEvidence              = NewError(128, "claim evidence is not valid")
	InvalidQueryString           = NewError(129, "found invalid query string")
	TooManyRequests              = NewError(130, "too many requests")
	NotMatchHTTPRouter           = NewError(131, "not found matched http router")
)
