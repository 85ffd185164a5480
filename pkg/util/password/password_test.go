package password

import (
	"errors"
	"strings"
	"testing"

	"github.com/Alijeyrad/hms_backend/config"
)

// cheap parameters keep the tests fast
var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHash(t *testing.T) {
	h := NewHasher(testParams)

	hash, err := h.Hash("correcthorsebatterystaple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Errorf("Hash() format invalid, got %s", hash)
	}

	other, _ := h.Hash("correcthorsebatterystaple")
	if hash == other {
		t.Error("Hash() should salt every call")
	}
}

func TestVerify(t *testing.T) {
	h := NewHasher(testParams)
	hash, err := h.Hash("mysecretpassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{"correct password", hash, "mysecretpassword", nil},
		{"wrong password", hash, "wrongpassword", ErrMismatch},
		{"empty password", hash, "", ErrMismatch},
		{"invalid hash format", "notahash", "mysecretpassword", ErrInvalidHash},
		{"wrong algorithm", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", "x", ErrInvalidHash},
		{"wrong version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA", "x", ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify(tt.hash, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_AcrossParameterChanges(t *testing.T) {
	old := NewHasher(testParams)
	hash, err := old.Hash("pw")
	if err != nil {
		t.Fatal(err)
	}

	stronger := testParams
	stronger.Iterations = 2
	h := NewHasher(stronger)

	if err := h.Verify(hash, "pw"); err != nil {
		t.Errorf("Verify() with new params error = %v", err)
	}
	if !h.NeedsRehash(hash) {
		t.Error("NeedsRehash() = false, want true")
	}
	if old.NeedsRehash(hash) {
		t.Error("NeedsRehash() = true for current params")
	}
}

func TestParamsFromConfig(t *testing.T) {
	p := ParamsFromConfig(config.PasswordConfig{})
	if p != DefaultParams() {
		t.Errorf("zero config = %+v, want defaults", p)
	}

	p = ParamsFromConfig(config.PasswordConfig{LowMemoryMode: true})
	if p.Memory != 32*1024 || p.Iterations != 4 {
		t.Errorf("low memory = %+v", p)
	}
}

func TestGenerate(t *testing.T) {
	for _, n := range []int{8, 16, 33} {
		pw, err := Generate(n)
		if err != nil {
			t.Fatal(err)
		}
		if len(pw) != n {
			t.Errorf("Generate(%d) len = %d", n, len(pw))
		}
	}
}
