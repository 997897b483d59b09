// Package handid generates sortable hand identifiers: a UUIDv7 encoded as 26
// characters of Crockford base32, the TypeID suffix format.
package handid

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the size of an encoded id.
const Length = 26

// Generator creates ids from a configurable random source.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading randomness from r. A nil r uses
// crypto/rand through the uuid package.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// New returns a fresh id.
func New() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a fresh id. It panics if the random source fails.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate hand id: " + err.Error())
	}
	return Encode(id)
}

// Encode writes the 128 bits of id, left padded to 130, as base32.
func Encode(id uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(Length)
	for i := 0; i < Length; i++ {
		var v byte
		for b := 0; b < 5; b++ {
			pos := i*5 + b - 2
			v <<= 1
			if pos >= 0 && id[pos/8]&(0x80>>(pos%8)) != 0 {
				v |= 1
			}
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Parse decodes an encoded id back into its UUID.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := 0; i < Length; i++ {
		v := byte(strings.IndexByte(alphabet, s[i]))
		for b := 0; b < 5; b++ {
			pos := i*5 + b - 2
			if pos < 0 {
				continue
			}
			if v&(0x10>>b) != 0 {
				id[pos/8] |= 0x80 >> (pos % 8)
			}
		}
	}
	return id, nil
}

// Validate checks that s is 26 base32 characters whose value fits in 128 bits.
func Validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("hand id must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return fmt.Errorf("hand id first character must be 0-7, got %c", s[0])
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
	}
	return nil
}

// Time returns the creation time embedded in an id.
func Time(s string) (time.Time, error) {
	id, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec), nil
}
