package benchmark

import (
	"strings"
	"testing"

	"github.com/asanchez-dev/bowbench/internal/tokenizer"
)

var sampleTexts = map[string]string{
	"short": "The quick brown fox jumps over the lazy dog",
	"medium": `A document-term matrix records how often each term of a shared
        vocabulary appears in each document of a corpus. Building one in
        parallel means partitioning the documents across workers, counting
        terms locally, agreeing on a single ordered vocabulary, and
        reassembling the rows in their original order at one coordinator.`,
	"long": strings.Repeat(`Call me Ishmael. Some years ago, never mind how
        long precisely, having little or no money in my purse, and nothing
        particular to interest me on shore, I thought I would sail about a
        little and see the watery part of the world. It is a way I have of
        driving off the spleen and regulating the circulation. `, 50),
}

func BenchmarkTokenize(b *testing.B) {
	for name, text := range sampleTexts {
		data := []byte(text)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				terms := tokenizer.Tokenize(data)
				_ = terms
			}
		})
	}
}

func BenchmarkTokenizeParallel(b *testing.B) {
	data := []byte(sampleTexts["medium"])
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			terms := tokenizer.Tokenize(data)
			_ = terms
		}
	})
}

func BenchmarkTokenizeAndCount(b *testing.B) {
	for name, text := range sampleTexts {
		data := []byte(text)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				counts := tokenizer.Count(tokenizer.Tokenize(data))
				_ = counts
			}
		})
	}
}
