package cmd

import "crypto/rand"

const tmpDirPrefix = "cypress_"
const tmpDirRandLen = 8

// newTmpDirName generates the per-invocation temporary directory name. The
// name doubles as the output archive namespace, the stdout/stderr sidecar
// stem, and the local extraction target, so it must be unique per run.
func newTmpDirName() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, tmpDirRandLen)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return tmpDirPrefix + string(b)
}
