package authz

import (
	"testing"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/config"
)

func TestNewGate(t *testing.T) {
	gate := newGate(gateParams{Config: &config.Config{AdminToken: "top-secret"}})
	tokenGate, ok := gate.(*StaticTokenGate)
	if !ok {
		t.Fatalf("expected *StaticTokenGate, got %T", gate)
	}
	if string(tokenGate.token) != "top-secret" {
		t.Fatalf("unexpected token: %q", string(tokenGate.token))
	}
}
