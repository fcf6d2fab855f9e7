package authz

import "testing"

func TestStaticTokenGate_Admin(t *testing.T) {
	gate := NewStaticTokenGate("top-secret")
	if !gate.Admin("top-secret") {
		t.Fatal("expected matching token to pass")
	}
	if gate.Admin("wrong") {
		t.Fatal("expected mismatched token to fail")
	}
	if gate.Admin("") {
		t.Fatal("expected empty credential to fail")
	}
}

func TestStaticTokenGate_EmptySecretLocksGate(t *testing.T) {
	gate := NewStaticTokenGate("")
	if gate.Admin("") {
		t.Fatal("expected gate without secret to refuse everything")
	}
	if gate.Admin("anything") {
		t.Fatal("expected gate without secret to refuse everything")
	}
}

func TestStaticTokenGate_Name(t *testing.T) {
	gate := NewStaticTokenGate("x")
	if gate.Name() != "static-token" {
		t.Fatalf("unexpected name: %s", gate.Name())
	}
}
