// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package base58 implements the Bitcoin-style base58 alphabet used
// throughout this repository as a stable, collision-free textual form for
// fixed-length binary identifiers (signatures, chunk hashes). It mirrors
// the encoding shipped by github.com/btcsuite/btcd's address utilities.
package base58

import "math/big"

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	bigRadix = big.NewInt(58)
	bigZero  = big.NewInt(0)
)

// Encode encodes b as a base58 string.
func Encode(b []byte) string {
	x := new(big.Int)
	x.SetBytes(b)

	answer := make([]byte, 0, len(b)*136/100)
	mod := new(big.Int)
	for x.Cmp(bigZero) > 0 {
		x.DivMod(x, bigRadix, mod)
		answer = append(answer, alphabet[mod.Int64()])
	}

	// leading zero bytes become leading '1's
	for _, i := range b {
		if i != 0 {
			break
		}
		answer = append(answer, alphabet[0])
	}

	// reverse
	for i, j := 0, len(answer)-1; i < j; i, j = i+1, j-1 {
		answer[i], answer[j] = answer[j], answer[i]
	}
	return string(answer)
}

// Decode decodes a base58 string into the bytes it represents. Unknown
// characters are skipped, matching btcsuite's lenient behavior.
func Decode(s string) []byte {
	answer := big.NewInt(0)
	j := big.NewInt(1)

	scratch := new(big.Int)
	for i := len(s) - 1; i >= 0; i-- {
		idx := indexOf(s[i])
		if idx == -1 {
			continue
		}
		scratch.SetInt64(int64(idx))
		scratch.Mul(j, scratch)
		answer.Add(answer, scratch)
		j.Mul(j, bigRadix)
	}

	tmpval := answer.Bytes()

	var numZeros int
	for numZeros = 0; numZeros < len(s); numZeros++ {
		if s[numZeros] != alphabet[0] {
			break
		}
	}
	flen := numZeros + len(tmpval)
	val := make([]byte, flen)
	copy(val[numZeros:], tmpval)
	return val
}

func indexOf(c byte) int {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return i
		}
	}
	return -1
}
