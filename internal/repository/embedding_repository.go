package repository

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/internhub/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmbeddingIndex finds internships whose description is closest to a query
// vector.
type EmbeddingIndex interface {
	Upsert(ctx context.Context, internshipID string, embedding []float32) error
	Search(ctx context.Context, embedding []float32, topK int) ([]string, error)
}

type PgVectorIndex struct {
	db *gorm.DB
}

func NewPgVectorIndex(db *gorm.DB) *PgVectorIndex {
	return &PgVectorIndex{db}
}

func (r *PgVectorIndex) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	return db.AutoMigrate(&model.InternshipEmbedding{})
}

func (r *PgVectorIndex) Upsert(ctx context.Context, internshipID string, embedding []float32) error {
	row := model.InternshipEmbedding{
		InternshipID: internshipID,
		Embedding:    pgvector.NewVector(embedding),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "internship_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
	}).Create(&row).Error
}

func (r *PgVectorIndex) Search(ctx context.Context, embedding []float32, topK int) ([]string, error) {
	var rows []model.InternshipEmbedding
	vec := pgvector.NewVector(embedding)

	// query pgvector <-> operator (Euclidean distance)
	err := r.db.WithContext(ctx).Raw(`
        SELECT internship_id
        FROM internship_embeddings
        ORDER BY embedding <-> ?
        LIMIT ?
    `, vec, topK).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.InternshipID)
	}
	return ids, nil
}

// MemoryIndex ranks by cosine similarity. Used when no database is configured.
type MemoryIndex struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{vectors: make(map[string][]float32)}
}

func (m *MemoryIndex) Upsert(ctx context.Context, internshipID string, embedding []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[internshipID] = append([]float32(nil), embedding...)
	return nil
}

func (m *MemoryIndex) Search(ctx context.Context, embedding []float32, topK int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		id    string
		score float64
	}
	all := make([]scored, 0, len(m.vectors))
	for id, v := range m.vectors {
		all = append(all, scored{id, cosine(embedding, v)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score == all[j].score {
			return all[i].id < all[j].id
		}
		return all[i].score > all[j].score
	})

	if topK > len(all) {
		topK = len(all)
	}
	ids := make([]string, 0, topK)
	for _, s := range all[:topK] {
		ids = append(ids, s.id)
	}
	return ids, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
