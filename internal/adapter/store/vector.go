package store

import (
	"math"
	"sort"
	"sync"

	"github.com/vaultify/backend/internal/domain"
	"github.com/vaultify/backend/internal/port"
)

// VectorIndex is the in-memory similarity index over embedded log chunks.
// Chunks and vectors are parallel slices; chunks[i] corresponds to vectors[i].
// The index grows incrementally as entries are ingested and is discarded
// wholesale when the log store is cleared.
type VectorIndex struct {
	mu      sync.RWMutex
	chunks  []string
	vectors [][]float32
}

// NewVectorIndex creates an empty index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// Add appends chunk/vector pairs to the index.
func (v *VectorIndex) Add(chunks []string, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return port.ErrVectorCountMatch
	}
	if len(chunks) == 0 {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.chunks = append(v.chunks, chunks...)
	v.vectors = append(v.vectors, vectors...)
	return nil
}

// Search returns up to k chunks ordered by cosine similarity to the query,
// descending. Ties are broken by insertion order, earlier chunk first.
func (v *VectorIndex) Search(query []float32, k int) []domain.ScoredChunk {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if k <= 0 || len(v.chunks) == 0 {
		return nil
	}

	results := make([]domain.ScoredChunk, len(v.chunks))
	for i := range v.chunks {
		results[i] = domain.ScoredChunk{
			Content:    v.chunks[i],
			ChunkIndex: i,
			Similarity: cosineSimilarity(query, v.vectors[i]),
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Similarity > results[b].Similarity
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}

// Len returns the number of indexed chunks. A zero length means the
// index is absent and query paths must not search it.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.chunks)
}

// Reset discards all indexed chunks and vectors.
func (v *VectorIndex) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chunks = nil
	v.vectors = nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched dimensions or zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
