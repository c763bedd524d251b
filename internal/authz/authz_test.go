package authz

import (
	"errors"
	"testing"
)

func TestRequireOwner(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		owner    string
		allowed  bool
	}{
		{name: "same user", identity: "google:123", owner: "google:123", allowed: true},
		{name: "same guest", identity: "guest:abc", owner: "guest:abc", allowed: true},
		{name: "different users", identity: "google:123", owner: "google:456", allowed: false},
		{name: "guest vs user", identity: "guest:123", owner: "google:123", allowed: false},
		{name: "both empty", identity: "", owner: "", allowed: true},
		{name: "owner empty", identity: "google:123", owner: "", allowed: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := RequireOwner(tt.identity, tt.owner)
			if tt.allowed && err != nil {
				t.Fatalf("RequireOwner(%q, %q) = %v, want nil", tt.identity, tt.owner, err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Fatalf("RequireOwner(%q, %q) = %v, want ErrForbidden", tt.identity, tt.owner, err)
			}
		})
	}
}

func TestRequireOwnerIsDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		if err := RequireOwner("google:1", "google:2"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("call %d: expected ErrForbidden, got %v", i, err)
		}
		if err := RequireOwner("google:1", "google:1"); err != nil {
			t.Fatalf("call %d: expected nil, got %v", i, err)
		}
	}
}
