package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/gatos/internal/adapter"
	"github.com/mmcdole/gatos/internal/domain"
	"github.com/mmcdole/gatos/internal/service"
	"github.com/mmcdole/gatos/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	images []domain.Image
	err    error
}

func (s stubRepo) Search(ctx context.Context, limit int) ([]domain.Image, error) {
	return s.images, s.err
}

func TestRunPlain(t *testing.T) {
	favs, err := store.NewFavoritesStore("")
	require.NoError(t, err)
	require.NoError(t, favs.Add("b"))

	svc := service.NewGalleryService(stubRepo{images: []domain.Image{
		{ID: "a", URL: "https://cdn.example.com/a.jpg"},
		{ID: "b", URL: "https://cdn.example.com/b.jpg", Breeds: []string{"Bengal"}},
	}}, favs, 2, 0, adapter.NullLogger())

	var out bytes.Buffer
	require.NoError(t, runPlain(context.Background(), &out, svc))

	assert.Equal(t,
		"♡ a https://cdn.example.com/a.jpg\n"+
			"♥ b https://cdn.example.com/b.jpg (Bengal)\n",
		out.String())
}

func TestRunPlain_Failure(t *testing.T) {
	svc := service.NewGalleryService(stubRepo{err: domain.ErrSourceOffline}, nil, 10, 0, adapter.NullLogger())

	var out bytes.Buffer
	err := runPlain(context.Background(), &out, svc)

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Empty(t, out.String())
}

func TestRunPlain_WriteError(t *testing.T) {
	svc := service.NewGalleryService(stubRepo{images: []domain.Image{{ID: "a", URL: "u"}}}, nil, 1, 0, adapter.NullLogger())
	err := runPlain(context.Background(), failingWriter{}, svc)
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }
