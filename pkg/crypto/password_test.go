package crypto

import (
	"strings"
	"testing"
)

// Requirement: a hashed password verifies against the password it was
// derived from and nothing else.
func TestArgon2_HashAndVerify(t *testing.T) {
	hasher := NewArgon2()

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("Hash() = %q, want PHC argon2id encoding", hash)
	}

	ok, err := hasher.Verify("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("Verify() with original password = false, want true")
	}

	ok, err = hasher.Verify("wrong password", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if ok {
		t.Error("Verify() with wrong password = true, want false")
	}
}

// Requirement: each hash uses a fresh random salt, so two hashes of the
// same password never collide.
func TestArgon2_HashUsesFreshSalt(t *testing.T) {
	hasher := NewArgon2()

	first, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical, salt is not random")
	}

	// Both encodings still verify independently
	for _, hash := range []string{first, second} {
		ok, err := hasher.Verify("same password", hash)
		if err != nil || !ok {
			t.Errorf("Verify(%q) = (%v, %v), want (true, nil)", hash, ok, err)
		}
	}
}

// Requirement: verification parameters come from the stored encoding, not
// the live instance, so parameter upgrades keep old hashes verifiable.
func TestArgon2_VerifyUsesEncodedParams(t *testing.T) {
	old := &Argon2{Memory: 32 * 1024, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	hash, err := old.Hash("legacy password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	current := NewArgon2()
	ok, err := current.Verify("legacy password", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("Verify() of hash produced with older parameters = false, want true")
	}
}

func TestArgon2_VerifyRejectsMalformedEncodings(t *testing.T) {
	hasher := NewArgon2()

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty string", hash: ""},
		{name: "not a PHC string", hash: "plainly-not-a-hash"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{name: "missing sections", hash: "$argon2id$v=19$m=65536,t=3,p=2"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
		{name: "bad parameters", hash: "$argon2id$v=19$m=what$c2FsdA$aGFzaA"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := hasher.Verify("password", test.hash); err == nil {
				t.Errorf("Verify(%q) error = nil, want parse failure", test.hash)
			}
		})
	}
}
