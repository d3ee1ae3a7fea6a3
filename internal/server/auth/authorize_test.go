package auth

import (
	"errors"
	"testing"

	"linkarchive/internal/common"
	"linkarchive/internal/server/models"
)

func TestParseTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{in: "self", want: Self()},
		{in: "0", want: TargetUser(0)},
		{in: "42", want: TargetUser(42)},
		{in: "4294967295", want: TargetUser(4294967295)},
		{in: "4294967296", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "alice", wantErr: true},
		{in: "", wantErr: true},
		{in: "Self", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseTarget(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTarget(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseTarget(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	alice := &models.User{ID: 7, Name: "alice"}

	id, err := Authorize(alice, Self())
	if err != nil {
		t.Fatalf("Authorize(self) error: %v", err)
	}
	if id != alice.ID {
		t.Fatalf("Authorize(self) = %d, want %d", id, alice.ID)
	}

	id, err = Authorize(alice, TargetUser(7))
	if err != nil {
		t.Fatalf("Authorize(own id) error: %v", err)
	}
	if id != 7 {
		t.Fatalf("Authorize(own id) = %d, want 7", id)
	}

	if _, err := Authorize(alice, TargetUser(8)); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("Authorize(other id): expected ErrUnauthorized, got %v", err)
	}
}
