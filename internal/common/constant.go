package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// UserAgentHeaderName is the gRPC metadata key holding the caller's user agent.
const UserAgentHeaderName = "user-agent"

// Roles understood by the server.
const (
	RoleAdmin = "admin"
	RoleVoter = "voter"
)
