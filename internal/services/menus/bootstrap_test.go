package menus

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-billing/internal/catalog"
	"restaurant-billing/internal/logger"
	"restaurant-billing/internal/models"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	svc := catalog.NewService(store, nil, logger.NewWithWriter("test", io.Discard))

	// a stale catalog is replaced, not merged
	require.NoError(t, store.Write(ctx, DefaultMenu, []byte(`{"Old": {"price": 1, "type": "Beverage", "extra": null}}`)))

	var buf bytes.Buffer
	require.NoError(t, Bootstrap(ctx, svc, logger.NewWithWriter("test", &buf), ""))

	c, err := svc.Load(ctx, DefaultMenu)
	require.NoError(t, err)
	assert.Len(t, c, 2)
	assert.NotContains(t, c, "Old")
	assert.Equal(t, "Beverage", string(c["Coca Cola"].Type))
	assert.Equal(t, "500ml", *c["Coca Cola"].Extra)
	assert.Equal(t, "Appetizer", string(c["Papas Fritas"].Type))
	assert.Equal(t, "grande", *c["Papas Fritas"].Extra)
	assert.Contains(t, buf.String(), "menu_created")
}

func TestBootstrap_NamedMenu(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	svc := catalog.NewService(store, nil, logger.NewWithWriter("test", io.Discard))

	require.NoError(t, Bootstrap(ctx, svc, logger.NewWithWriter("test", io.Discard), "lunch"))

	_, err := store.Read(ctx, "lunch")
	assert.NoError(t, err)
	_, err = store.Read(ctx, DefaultMenu)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestBootstrap_RejectsUnsafeName(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := catalog.NewFileStore(filepath.Join(dir, "menus"))
	svc := catalog.NewService(store, nil, logger.NewWithWriter("test", io.Discard))

	for _, name := range []string{"../x", "a/b", "lunch.json"} {
		err := Bootstrap(ctx, svc, logger.NewWithWriter("test", io.Discard), name)
		var verr models.ValidationError
		assert.True(t, errors.As(err, &verr), name)
	}

	_, err := os.Stat(filepath.Join(dir, "x.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
