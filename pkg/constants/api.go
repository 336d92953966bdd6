package constants

const (
	ResponderPortNumber      = 80
	ResponderAdminPortNumber = 6942

	AcmePath           = "/.well-known/acme-challenge"
	AcmeChallengeRoute = AcmePath + "/{token}"
	AcmeTokenParam     = "token"

	// Let's Encrypt requires the key authorisation be served as plain text.
	ChallengeContentType = "text/plain"
)
