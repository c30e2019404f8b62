package httputils

import (
	"net/http"

	"github.com/mutualnet/mutualpool/lib/errors"
)

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageRecordDoesNotExist.Code:    http.StatusNotFound,
		errors.StorageRecordAlreadyExists.Code:   http.StatusConflict,
		errors.StorageCoreError.Code:             http.StatusInternalServerError,
		errors.StorageConfigInvalid.Code:         http.StatusInternalServerError,
		errors.NotAdministrator.Code:             http.StatusForbidden,
		errors.NotContributor.Code:               http.StatusForbidden,
		errors.BelowMinimumContribution.Code:     http.StatusBadRequest,
		errors.InvalidClaimAmount.Code:           http.StatusBadRequest,
		errors.ClaimNotFound.Code:                http.StatusNotFound,
		errors.ClaimAlreadySettled.Code:          http.StatusConflict,
		errors.AlreadyVoted.Code:                 http.StatusConflict,
		errors.SelfVoteForbidden.Code:            http.StatusForbidden,
		errors.ThresholdNotMet.Code:              http.StatusConflict,
		errors.NoContributionToWithdraw.Code:     http.StatusBadRequest,
		errors.TransferFailed.Code:               http.StatusBadGateway,
		errors.MaximumBalanceReached.Code:        http.StatusBadRequest,
		errors.ContributionBalanceUnderZero.Code: http.StatusBadRequest,
		errors.BadRequestParameter.Code:          http.StatusBadRequest,
		errors.InvalidAddress.Code:               http.StatusBadRequest,
		errors.PoolNotInitialized.Code:           http.StatusServiceUnavailable,
		errors.PoolAlreadyInitialized.Code:       http.StatusConflict,
		errors.PageQueryLimitMaxExceed.Code:      http.StatusBadRequest,
		errors.InvalidEvidence.Code:              http.StatusBadRequest,
		errors.InvalidQueryString.Code:           http.StatusBadRequest,
		errors.TooManyRequests.Code:              http.StatusTooManyRequests,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
