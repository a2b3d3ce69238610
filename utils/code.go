package utils

import "crypto/rand"

// codeAlphabet leaves out characters that are easy to misread
// (I, O, 0 and 1). Its length divides 256, so a plain modulo
// keeps the draw uniform.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode returns a random code of the given length.
func GenerateCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
