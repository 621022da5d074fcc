package auth

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"
	"time"
)

func TestSigningString(t *testing.T) {
	params := map[string]string{
		"time":      "1700000000",
		"handles":   "tourist",
		"apiKey":    "xxx",
		"contestId": "566",
	}

	got := SigningString("123456", "contest.hacks", params, "yyy")
	want := "123456/api/contest.hacks?apiKey=xxx&contestId=566&handles=tourist&time=1700000000#yyy"
	if got != want {
		t.Errorf("SigningString() = %q, want %q", got, want)
	}
}

func TestSigningStringIgnoresApiSig(t *testing.T) {
	params := map[string]string{"apiKey": "k", "apiSig": "zzz", "time": "1"}

	got := SigningString("abcdef", "user.info", params, "s")
	if strings.Contains(got, "apiSig") {
		t.Errorf("SigningString() = %q, should not contain apiSig", got)
	}
}

func TestSigningStringByteOrder(t *testing.T) {
	// Uppercase sorts before lowercase in byte order.
	params := map[string]string{"b": "2", "B": "1", "a": "3"}

	got := SigningString("n", "m", params, "s")
	want := "n/api/m?B=1&a=3&b=2#s"
	if got != want {
		t.Errorf("SigningString() = %q, want %q", got, want)
	}
}

func TestDigestDeterministic(t *testing.T) {
	params := map[string]string{"apiKey": "xxx", "time": "1700000000", "contestId": "566"}

	first := Digest("123456", "contest.hacks", params, "yyy")
	second := Digest("123456", "contest.hacks", params, "yyy")
	if first != second {
		t.Errorf("Digest() not deterministic: %q != %q", first, second)
	}

	sum := sha512.Sum512([]byte("123456/api/contest.hacks?apiKey=xxx&contestId=566&time=1700000000#yyy"))
	if want := hex.EncodeToString(sum[:]); first != want {
		t.Errorf("Digest() = %q, want %q", first, want)
	}
	if len(first) != 128 {
		t.Errorf("len(Digest()) = %d, want 128", len(first))
	}
	if strings.ToLower(first) != first {
		t.Errorf("Digest() = %q, want lowercase hex", first)
	}
}

func TestCredentials_Sign(t *testing.T) {
	creds := NewCredentials("xxx", "yyy").
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }).
		WithNonce("123456")

	params := map[string]string{"contestId": "566"}
	signed, err := creds.Sign("contest.hacks", params)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if signed["apiKey"] != "xxx" {
		t.Errorf("apiKey = %q, want %q", signed["apiKey"], "xxx")
	}
	if signed["time"] != "1700000000" {
		t.Errorf("time = %q, want %q", signed["time"], "1700000000")
	}

	sum := sha512.Sum512([]byte("123456/api/contest.hacks?apiKey=xxx&contestId=566&time=1700000000#yyy"))
	want := "123456" + hex.EncodeToString(sum[:])
	if signed["apiSig"] != want {
		t.Errorf("apiSig = %q, want %q", signed["apiSig"], want)
	}

	if _, ok := params["apiKey"]; ok {
		t.Error("Sign mutated the caller's params")
	}
}

func TestNewCredentialsIncomplete(t *testing.T) {
	if NewCredentials("", "secret") != nil {
		t.Error("NewCredentials with empty key should be nil")
	}
	if NewCredentials("key", "") != nil {
		t.Error("NewCredentials with empty secret should be nil")
	}
}

func TestRandomNonce(t *testing.T) {
	for i := 0; i < 50; i++ {
		n, err := RandomNonce()
		if err != nil {
			t.Fatalf("RandomNonce failed: %v", err)
		}
		if len(n) != NonceLength {
			t.Fatalf("len(nonce) = %d, want %d", len(n), NonceLength)
		}
		for _, r := range n {
			if !strings.ContainsRune(nonceAlphabet, r) {
				t.Fatalf("nonce %q contains %q outside [a-z0-9]", n, r)
			}
		}
	}
}
