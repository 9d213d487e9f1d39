package localfs

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

type signer struct {
	secret []byte
}

func (s signer) sign(path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s signer) verify(path string, expires int64, signature string) bool {
	expected, err := hex.DecodeString(s.sign(path, expires))
	if err != nil {
		return false
	}
	actual, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, actual)
}
