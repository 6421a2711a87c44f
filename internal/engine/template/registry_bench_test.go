package template

import (
	"Go2NetTemplates/internal/core/model"
	"fmt"
	"hash/crc32"
	"math/rand/v2"
	"testing"
)

func benchmarkPackets(n int) []model.Buffer {
	rng := rand.New(rand.NewPCG(1, 2))
	shapes := []string{"A:%d,B:%d", "A:%d,C:%d", "A:%d,B:%d,C:1", "D:%d,E:%d"}
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf(shapes[rng.IntN(len(shapes))], rng.IntN(200), rng.IntN(200))
	}
	return packets(texts...)
}

func BenchmarkClassify(b *testing.B) {
	in := benchmarkPackets(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FindTemplates(in, textParser); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSignatureHash(b *testing.B) {
	sig := "0-IPv4.Version|1-IPv4.IHL|2-IPv4.TOS|3-IPv4.Length|4-IPv4.Id|5-IPv4.Flags|6-UDP.SrcPort|7-UDP.DstPort|8-payload"
	b.Run("FNV64a", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Hash(sig)
		}
	})
	b.Run("CRC32", func(b *testing.B) {
		data := []byte(sig)
		for i := 0; i < b.N; i++ {
			crc32.ChecksumIEEE(data)
		}
	})
}
