package authz

import "crypto/hmac"

// StaticTokenGate grants admin to callers presenting the configured shared
// token. An empty configured token locks the gate shut.
type StaticTokenGate struct {
	token []byte
}

// NewStaticTokenGate builds StaticTokenGate around the shared secret.
func NewStaticTokenGate(token string) *StaticTokenGate {
	return &StaticTokenGate{token: []byte(token)}
}

// Admin compares the credential in constant time.
func (g *StaticTokenGate) Admin(credential string) bool {
	if len(g.token) == 0 {
		return false
	}
	return hmac.Equal(g.token, []byte(credential))
}

func (g *StaticTokenGate) Name() string {
	return "static-token"
}
