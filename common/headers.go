package common

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	// correlation id of the caller's session, parsed as uuid
	SessionRequestHeader = "GuidSessionDataRequest"
	// name of the target microservice
	MicroserviceHeader = "X-Refit-Client"
)
