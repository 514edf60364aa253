package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/google/uuid"
)

const (
	rankingPrefix  = "ranking:"
	RankingPattern = rankingPrefix + "*"
)

// RankingKey identifies a ranking by user, catalog version, query vector and
// top-K, so a changed profile or a refreshed catalog never hits a stale entry.
func RankingKey(userID uuid.UUID, catalogVersion string, query []float32, topK int) string {
	return fmt.Sprintf("%s%s:%s:%d:%s", rankingPrefix, userID, catalogVersion, topK, vectorHash(query))
}

func vectorHash(v []float32) string {
	h := sha256.New()
	var buf [4]byte
	for _, x := range v {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(x))
		_, _ = h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
