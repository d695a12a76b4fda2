// Package vectorstore persists knowledge item embeddings in SQLite and
// serves cosine similarity search, using the sqlite-vec extension when
// the binary is built with it and a brute-force scan otherwise.
package vectorstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/culinamind/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

// DefaultDims matches the text-embedding-3-small vector size.
const DefaultDims = 1536

// Store implements outbound.VectorIndex on a local SQLite file.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dims   int
	useVec bool
	logger *zap.Logger
}

// NewStore opens (creating if needed) the index database at path.
func NewStore(path string, dims int, logger *zap.Logger) (*Store, error) {
	if dims <= 0 {
		dims = DefaultDims
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	s := &Store{db: db, dims: dims, logger: logger}

	// ANN path via sqlite-vec. Falls back to a plain table scanned in
	// Go when the extension is not compiled in.
	vecDDL := fmt.Sprintf(`
		CREATE VIRTUAL TABLE IF NOT EXISTS vec_knowledge USING vec0(
			embedding float[%d],
			item_id TEXT
		);
	`, dims)
	if _, err := db.Exec(vecDDL); err != nil {
		logger.Warn("sqlite-vec unavailable, using brute-force similarity scan", zap.Error(err))
	} else {
		s.useVec = true
	}

	fallbackDDL := `
		CREATE TABLE IF NOT EXISTS knowledge_embeddings (
			item_id   TEXT PRIMARY KEY,
			embedding BLOB NOT NULL
		);
	`
	if _, err := db.Exec(fallbackDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create embeddings table: %w", err)
	}

	logger.Info("vector index opened",
		zap.String("path", path),
		zap.Int("dims", dims),
		zap.Bool("ann", s.useVec),
	)
	return s, nil
}

// Upsert stores or replaces the embedding for an item.
func (s *Store) Upsert(ctx context.Context, id string, embedding []float32) error {
	if len(embedding) != s.dims {
		return fmt.Errorf("embedding has %d dims, index expects %d", len(embedding), s.dims)
	}
	blob := encodeFloat32Blob(embedding)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO knowledge_embeddings (item_id, embedding) VALUES (?, ?)
		 ON CONFLICT(item_id) DO UPDATE SET embedding = excluded.embedding`,
		id, blob,
	); err != nil {
		return fmt.Errorf("upsert embedding: %w", err)
	}

	if s.useVec {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM vec_knowledge WHERE item_id = ?`, id); err != nil {
			return fmt.Errorf("replace vec row: %w", err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO vec_knowledge (embedding, item_id) VALUES (?, ?)`, blob, id,
		); err != nil {
			return fmt.Errorf("insert vec row: %w", err)
		}
	}
	return nil
}

// Search returns the k nearest items by cosine distance, best first.
func (s *Store) Search(ctx context.Context, embedding []float32, k int) ([]outbound.Neighbor, error) {
	if k <= 0 {
		k = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.useVec {
		return s.searchVec(ctx, embedding, k)
	}
	return s.searchBruteForce(ctx, embedding, k)
}

func (s *Store) searchVec(ctx context.Context, embedding []float32, k int) ([]outbound.Neighbor, error) {
	blob := encodeFloat32Blob(embedding)
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			item_id,
			vec_distance_cosine(embedding, ?) AS distance
		FROM vec_knowledge
		ORDER BY distance ASC
		LIMIT ?
	`, blob, k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer rows.Close()

	var neighbors []outbound.Neighbor
	for rows.Next() {
		var id string
		var distance float64
		if err := rows.Scan(&id, &distance); err != nil {
			s.logger.Warn("failed to scan search row", zap.Error(err))
			continue
		}
		// Cosine distance is 1 - similarity.
		neighbors = append(neighbors, outbound.Neighbor{ID: id, Similarity: 1.0 - distance})
	}
	return neighbors, rows.Err()
}

func (s *Store) searchBruteForce(ctx context.Context, embedding []float32, k int) ([]outbound.Neighbor, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT item_id, embedding FROM knowledge_embeddings`)
	if err != nil {
		return nil, fmt.Errorf("scan embeddings: %w", err)
	}
	defer rows.Close()

	var neighbors []outbound.Neighbor
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			s.logger.Warn("failed to scan embedding row", zap.Error(err))
			continue
		}
		stored, err := decodeFloat32Blob(blob)
		if err != nil {
			s.logger.Warn("corrupt embedding blob", zap.String("item_id", id), zap.Error(err))
			continue
		}
		neighbors = append(neighbors, outbound.Neighbor{
			ID:         id,
			Similarity: cosineSimilarity(embedding, stored),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// Count returns the number of indexed items.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge_embeddings`).Scan(&n)
	return n, err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		af, bf := float64(a[i]), float64(b[i])
		dot += af * bf
		na += af * af
		nb += bf * bf
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// encodeFloat32Blob encodes a float32 slice as a little-endian blob for sqlite-vec.
func encodeFloat32Blob(vec []float32) []byte {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, vec)
	return buf.Bytes()
}

func decodeFloat32Blob(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("blob length %d not a multiple of 4", len(blob))
	}
	out := make([]float32, len(blob)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return out, nil
}

var _ outbound.VectorIndex = (*Store)(nil)
