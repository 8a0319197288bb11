package api

import (
	"context"

	"localrag/types"

	"github.com/google/uuid"
)

type fakeStore struct {
	chunks       map[uuid.UUID]types.Chunk
	searchResult []types.Chunk
	upsertErr    error
	searchErr    error
	upsertCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{chunks: make(map[uuid.UUID]types.Chunk)}
}

func (f *fakeStore) Init(context.Context) error { return nil }

func (f *fakeStore) UpsertChunks(_ context.Context, chunks []types.Chunk) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, c := range chunks {
		f.chunks[c.ID] = c
	}
	return nil
}

func (f *fakeStore) Search(context.Context, []float32, int) ([]types.Chunk, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResult, nil
}

func (f *fakeStore) CountChunks(context.Context) (int, error) {
	return len(f.chunks), nil
}

func (f *fakeStore) Close() error { return nil }

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

type fakeGenerator struct {
	answer      string
	err         error
	calls       int
	lastContext string
}

func (f *fakeGenerator) Generate(context, question string) (string, error) {
	f.calls++
	f.lastContext = context
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeExtractor struct {
	pages       []string
	validateErr error
	extractErr  error
}

func (f *fakeExtractor) Validate(string) error {
	return f.validateErr
}

func (f *fakeExtractor) ExtractPages(string) ([]string, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return f.pages, nil
}
