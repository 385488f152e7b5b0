package core

import (
	"math"
	"testing"
)

func TestAddSafe(t *testing.T) {
	if v, err := AddSafe(10, 5); err != nil || v != 15 {
		t.Fatalf("got %v %v", v, err)
	}
	if _, err := AddSafe(math.MaxInt64, 1); err == nil {
		t.Fatalf("expected overflow")
	}
}

func TestNormalizeUserID(t *testing.T) {
	id, err := NormalizeUserID(" Alice ")
	if err != nil || id != "alice" {
		t.Fatalf("got %v %v", id, err)
	}
	if _, err := NormalizeUserID("   "); err == nil {
		t.Fatalf("expected empty error")
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Member ")
	if err != nil || r != RoleMember {
		t.Fatalf("got %v %v", r, err)
	}
	if _, err := ParseRole("wizard"); err == nil {
		t.Fatalf("expected unknown role error")
	}
	for _, r := range Roles() {
		if !r.Valid() {
			t.Fatalf("role %s should be valid", r)
		}
	}
}

func TestValidateRewardID(t *testing.T) {
	if err := ValidateRewardID("mem-1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := ValidateRewardID("bad id"); err == nil {
		t.Fatalf("expected invalid id err")
	}
}

func TestProgressClone(t *testing.T) {
	p := Progress{UserID: "u", Role: RoleMember, XP: 10, Unlocked: []string{"mem-1"}}
	cp := p.Clone()
	cp.Unlocked[0] = "other"
	if p.Unlocked[0] != "mem-1" {
		t.Fatal("clone should not share the unlocked slice")
	}
	if !p.HasUnlocked("mem-1") || p.HasUnlocked("mem-2") {
		t.Fatal("HasUnlocked mismatch")
	}
}
