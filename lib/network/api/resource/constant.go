package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLPool               = APIPrefix + APIVersionV1 + "/pool"
	URLContributions      = APIPrefix + APIVersionV1 + "/contributions"
	URLContribution       = APIPrefix + APIVersionV1 + "/contributions/{id}"
	URLClaims             = APIPrefix + APIVersionV1 + "/claims"
	URLClaim              = APIPrefix + APIVersionV1 + "/claims/{id}"
)
