package embedder

import (
	"strings"

	"github.com/clipperhouse/uax29/sentences"
)

// Chunk is a piece of text with its position in the source document.
type Chunk struct {
	Text string
	// TokenSize represents the number of tokens in this chunk
	TokenSize int
	// StartSentence is the index of the first sentence in this chunk
	StartSentence int
	// EndSentence is the index of the last sentence in this chunk (exclusive)
	EndSentence int
}

// Chunker splits text into chunks.
type Chunker interface {
	Chunk(text string) []Chunk
}

// SentenceSplitter splits text on Unicode sentence boundaries (UAX #29).
// Blank segments are dropped.
func SentenceSplitter(text string) []string {
	scanner := sentences.NewScanner(strings.NewReader(text))
	var ret []string
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			ret = append(ret, s)
		}
	}
	return ret
}

// TextChunker builds overlapping chunks of whole sentences.
type TextChunker struct {
	// ChunkSize is the target size of each chunk in tokens
	ChunkSize int
	// ChunkOverlap is the number of tokens that should overlap between adjacent chunks
	ChunkOverlap int
	// TokenCounter is used to count tokens in text segments
	TokenCounter TokenCounter
	// SentenceSplitter is a function that splits text into sentences
	SentenceSplitter func(string) []string
}

var _ Chunker = (*TextChunker)(nil)

// TextChunkerOption is a function type for configuring TextChunker instances.
type TextChunkerOption func(*TextChunker)

func WithChunkSize(size int) TextChunkerOption {
	return func(tc *TextChunker) {
		tc.ChunkSize = size
	}
}

func WithChunkOverlap(overlap int) TextChunkerOption {
	return func(tc *TextChunker) {
		tc.ChunkOverlap = overlap
	}
}

func WithTokenCounter(counter TokenCounter) TextChunkerOption {
	return func(tc *TextChunker) {
		tc.TokenCounter = counter
	}
}

// NewTextChunker creates a new TextChunker. Defaults: 200 tokens per chunk,
// 50 tokens overlap, word counting and UAX #29 sentences.
func NewTextChunker(options ...TextChunkerOption) *TextChunker {
	tc := &TextChunker{
		ChunkSize:        200,
		ChunkOverlap:     50,
		TokenCounter:     new(DefaultTokenCounter),
		SentenceSplitter: SentenceSplitter,
	}
	for _, option := range options {
		option(tc)
	}
	return tc
}

// Chunk adds sentences to the current chunk until ChunkSize would be
// exceeded, then starts a new chunk that repeats the trailing sentences worth
// ChunkOverlap tokens. A single sentence larger than ChunkSize becomes its own
// chunk.
func (tc *TextChunker) Chunk(text string) []Chunk {
	sentences := tc.SentenceSplitter(text)
	var (
		chunks  []Chunk
		current Chunk
		tokens  int
	)
	flush := func() {
		current.Text = strings.Join(sentences[current.StartSentence:current.EndSentence], " ")
		current.TokenSize = tokens
		chunks = append(chunks, current)
	}
	for i, sentence := range sentences {
		count := tc.TokenCounter.Count(sentence)
		if tokens > 0 && tokens+count > tc.ChunkSize {
			flush()
			overlapStart := max(current.StartSentence+1, current.EndSentence-tc.overlapSentences(sentences, current.EndSentence))
			current = Chunk{StartSentence: overlapStart}
			tokens = 0
			for j := overlapStart; j < i; j++ {
				tokens += tc.TokenCounter.Count(sentences[j])
			}
		} else if tokens == 0 {
			current.StartSentence = i
		}
		current.EndSentence = i + 1
		tokens += count
	}
	if tokens > 0 {
		flush()
	}
	return chunks
}

// overlapSentences returns how many sentences before endSentence are needed to
// reach ChunkOverlap tokens.
func (tc *TextChunker) overlapSentences(sentences []string, endSentence int) int {
	overlapTokens := 0
	n := 0
	for i := endSentence - 1; i >= 0 && overlapTokens < tc.ChunkOverlap; i-- {
		overlapTokens += tc.TokenCounter.Count(sentences[i])
		n++
	}
	return n
}
