package helpers

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

var (
	objectIDRe      = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	objectIDProcess [5]byte
	objectIDCounter atomic.Uint32
)

func init() {
	if _, err := rand.Read(objectIDProcess[:]); err != nil {
		panic("objectid: cannot read random bytes: " + err.Error())
	}
	var seed [4]byte
	_, _ = rand.Read(seed[:])
	objectIDCounter.Store(binary.BigEndian.Uint32(seed[:]))
}

// NewObjectID returns a 24 char lowercase hex id: 4 bytes unix seconds,
// 5 bytes per-process random, 3 bytes counter. Ids sort by creation second.
func NewObjectID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(time.Now().Unix()))
	copy(b[4:9], objectIDProcess[:])
	n := objectIDCounter.Add(1)
	b[9] = byte(n >> 16)
	b[10] = byte(n >> 8)
	b[11] = byte(n)
	return hex.EncodeToString(b[:])
}

// IsObjectID reports whether s is exactly 24 hexadecimal characters.
func IsObjectID(s string) bool {
	return objectIDRe.MatchString(s)
}

// NormalizeObjectID lower-cases an id so comparisons and lookups are by value.
func NormalizeObjectID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
