package auth

import (
	"github.com/RassulYunussov/msclient/common"
)

type AuthParameters struct {
	Sessions      common.SessionData
	Cache         common.AuthCache
	Authenticator common.Authenticator
	Credentials   common.LoginCredentials
}
