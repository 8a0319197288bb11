package store

import (
	"context"
	"fmt"
	"log"
	"strings"

	"localrag/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// VectorStorer is the persistent collection of (id, text, embedding)
// entries shared by the ingestion and query paths.
type VectorStorer interface {
	Init(context.Context) error
	UpsertChunks(context.Context, []types.Chunk) error
	Search(context.Context, []float32, int) ([]types.Chunk, error)
	CountChunks(context.Context) (int, error)
	Close() error
}

// PostgresStore keeps the collection in a pgvector-enabled Postgres
// table named after the configured collection. One instance per
// process; concurrent access relies on Postgres itself.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
	dim   int
}

func NewPostgresStore(ctx context.Context, connStr, collection string, dim int) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool:  pool,
		table: pgx.Identifier{collection}.Sanitize(),
		dim:   dim,
	}, nil
}

// Init creates the collection table and its cosine index if absent.
// The vector dimension is fixed here; every embedding written later
// must match it.
func (p *PostgresStore) Init(ctx context.Context) error {
	query := fmt.Sprintf(`
    CREATE EXTENSION IF NOT EXISTS vector;

    CREATE TABLE IF NOT EXISTS %[1]s (
        id UUID PRIMARY KEY,
        doc_id UUID NOT NULL,
        title TEXT,
        position INT NOT NULL,
        content TEXT NOT NULL,
        embedding vector(%[2]d)
    );

	CREATE INDEX IF NOT EXISTS idx_chunks_embedding ON %[1]s USING ivfflat (embedding vector_cosine_ops)
	WITH (lists = 100);

	CREATE INDEX IF NOT EXISTS idx_chunks_doc_id ON %[1]s(doc_id);
    `, p.table, p.dim)

	_, err := p.pool.Exec(ctx, query)
	return err
}

// UpsertChunks writes a whole document in one transaction. Matching
// IDs are replaced, so re-ingesting a file never duplicates entries,
// and a failure anywhere rolls the entire document back.
func (p *PostgresStore) UpsertChunks(ctx context.Context, chunks []types.Chunk) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
    INSERT INTO %s (id, doc_id, title, position, content, embedding)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (id) DO UPDATE SET
        doc_id = EXCLUDED.doc_id,
        title = EXCLUDED.title,
        position = EXCLUDED.position,
        content = EXCLUDED.content,
        embedding = EXCLUDED.embedding
    `, p.table)

	for _, c := range chunks {
		if _, err := tx.Exec(ctx, query,
			c.ID, c.DocID, c.Title, c.Index, c.Content, toPgVector(c.Embedding),
		); err != nil {
			return fmt.Errorf("failed to upsert chunk %d: %w", c.Index, err)
		}
	}
	return tx.Commit(ctx)
}

func toPgVector(v []float32) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%f", x)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Search returns the limit chunks nearest to the query vector by
// cosine distance, most similar first.
func (p *PostgresStore) Search(ctx context.Context, queryVec []float32, limit int) ([]types.Chunk, error) {
	if len(queryVec) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	vector := pgvector.NewVector(queryVec)

	query := fmt.Sprintf(`
		SELECT id, doc_id, title, position, content,
		       1-(embedding <=> $1) as distance
		FROM %s
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`, p.table)

	rows, err := p.pool.Query(ctx, query, vector, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []types.Chunk
	for rows.Next() {
		var chunk types.Chunk
		if err := rows.Scan(
			&chunk.ID,
			&chunk.DocID,
			&chunk.Title,
			&chunk.Index,
			&chunk.Content,
			&chunk.Distance,
		); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

func (p *PostgresStore) CountChunks(ctx context.Context) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", p.table)).Scan(&count)
	return count, err
}

func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		log.Println("Postgres connection pool is closed")
	}
	return nil
}
