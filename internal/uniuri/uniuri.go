// Package uniuri generates cryptographically secure random strings. The
// daemon uses it to mint the initial admin password when seeding an empty
// users table.
package uniuri

import "crypto/rand"

// StdLen is the default string length, roughly 95 bits of entropy over the
// standard charset.
const StdLen = 16

// StdChars is the default charset.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of the standard length and charset.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of the given length over the standard
// charset.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of the given length drawn from chars.
// Bytes above the largest multiple of len(chars) are rejected so every
// character is equally likely.
func NewLenChars(length int, chars []byte) string {
	if length == 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("uniuri: charset must hold 2..256 characters")
	}

	// rejection threshold to avoid modulo bias
	maxRb := 255 - (256 % clen)

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			if int(rb) > maxRb {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				return string(out)
			}
		}
	}
}
