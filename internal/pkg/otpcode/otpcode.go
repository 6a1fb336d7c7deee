package otpcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	minCode = 100000
	maxCode = 999999
)

// Generator produces fixed-width numeric codes.
type Generator interface {
	Generate() (string, error)
}

type randomGenerator struct{}

// New returns a generator drawing uniformly from [100000, 999999].
func New() Generator { return randomGenerator{} }

func (randomGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+minCode, 10), nil
}
