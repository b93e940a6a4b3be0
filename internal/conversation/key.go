package conversation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeySeparator joins the two identities of a Key; it also names the log file.
const KeySeparator = "_"

var ErrInvalidIdentity = errors.New("invalid identity")

// Key names the single shared history of two participants. The zero Key is invalid;
// build keys with CanonicalKey.
type Key struct {
	first  string
	second string
}

// CanonicalKey orders a and b lexicographically so both peers resolve the same Key.
func CanonicalKey(a, b string) (Key, error) {
	if err := ValidateIdentity(a); err != nil {
		return Key{}, err
	}
	if err := ValidateIdentity(b); err != nil {
		return Key{}, err
	}
	if b < a {
		a, b = b, a
	}
	return Key{first: a, second: b}, nil
}

func (k Key) Participants() (string, string) {
	return k.first, k.second
}

// Peer returns the participant that is not self.
func (k Key) Peer(self string) string {
	if self == k.first {
		return k.second
	}
	return k.first
}

func (k Key) String() string {
	return k.first + KeySeparator + k.second
}

func (k Key) valid() bool {
	return k.first != "" && k.second != ""
}

// ParseKey turns a Key's String form back into a Key. Only canonical forms are accepted.
func ParseKey(s string) (Key, error) {
	a, b, ok := strings.Cut(s, KeySeparator)
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	key, err := CanonicalKey(a, b)
	if err != nil {
		return Key{}, err
	}
	if key.first != a {
		return Key{}, fmt.Errorf("%w: %q is not canonical", ErrInvalidKey, s)
	}
	return key, nil
}

// ValidateIdentity rejects identities that cannot name a log file or be stored in one.
// Every identity the directory accepts must pass it.
func ValidateIdentity(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidIdentity)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidIdentity, id)
	case strings.ContainsAny(id, `/\`+KeySeparator):
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidIdentity, id)
	case !utf8.ValidString(id):
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidIdentity, id)
	case strings.ContainsFunc(id, func(r rune) bool { return r < 0x20 || r == 0x7f }):
		return fmt.Errorf("%w: %q contains a control character", ErrInvalidIdentity, id)
	}
	return nil
}
