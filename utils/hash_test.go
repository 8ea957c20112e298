package utils

import "testing"

func TestStageAndVerifyPassword(t *testing.T) {
	salt, hash, err := StagePassword("krapow55")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if salt == "" || hash == "" {
		t.Fatal("empty salt or hash")
	}

	if !VerifyStagedPassword("krapow55", salt, hash) {
		t.Fatal("correct password rejected")
	}
	if VerifyStagedPassword("krapow56", salt, hash) {
		t.Fatal("wrong password accepted")
	}
	if VerifyStagedPassword("krapow55", "not-hex!", hash) {
		t.Fatal("garbage salt accepted")
	}
}

func TestStagePasswordSaltsDiffer(t *testing.T) {
	salt1, hash1, err := StagePassword("same")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	salt2, hash2, err := StagePassword("same")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if salt1 == salt2 || hash1 == hash2 {
		t.Fatal("two stagings of the same password produced identical salt/hash")
	}
}
