package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// RunOutputStoreContract runs a suite of tests to verify that an OutputStore implementation
// adheres to the defined interface contract.
func RunOutputStoreContract(t *testing.T, store OutputStore) {
	ctx := context.Background()
	name := "contract_" + time.Now().Format("20060102150405")

	t.Run("Create and Put and Get", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, name), "Create should not return error")
		require.NoError(t, store.Put(ctx, name, domain.ArtifactController, []byte(`{"name":"fx"}`)))

		data, err := store.Get(ctx, name, domain.ArtifactController)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"fx"}`, string(data))

		// Put replaces.
		require.NoError(t, store.Put(ctx, name, domain.ArtifactController, []byte(`{}`)))
		data, err = store.Get(ctx, name, domain.ArtifactController)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("Create Existing", func(t *testing.T) {
		err := store.Create(ctx, name)
		assert.ErrorIs(t, err, domain.ErrOutputExists)
	})

	t.Run("Missing Namespace", func(t *testing.T) {
		err := store.Put(ctx, "missing-"+name, domain.ArtifactMenu, []byte("{}"))
		assert.ErrorIs(t, err, domain.ErrOutputNotFound)

		_, err = store.Get(ctx, "missing-"+name, domain.ArtifactMenu)
		assert.ErrorIs(t, err, domain.ErrOutputNotFound)
	})

	t.Run("Missing Artifact", func(t *testing.T) {
		_, err := store.Get(ctx, name, "absent.json")
		assert.ErrorIs(t, err, domain.ErrOutputNotFound)
	})

	t.Run("List", func(t *testing.T) {
		second := name + "_1"
		require.NoError(t, store.Create(ctx, second))
		defer func() { _ = store.Delete(ctx, second) }()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)
		assert.Contains(t, names, second)
		assert.IsNonDecreasing(t, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Get(ctx, name, domain.ArtifactController)
		assert.ErrorIs(t, err, domain.ErrOutputNotFound, "Get after Delete should return ErrOutputNotFound")

		err = store.Delete(ctx, name)
		assert.ErrorIs(t, err, domain.ErrOutputNotFound)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, name)
	})
}

// RunInstallationContract verifies an Installation implementation.
func RunInstallationContract(t *testing.T, inst Installation) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		installed, err := inst.Installed(ctx)
		require.NoError(t, err)
		assert.Empty(t, installed)
	})

	t.Run("Install and Replace", func(t *testing.T) {
		first := domain.ArtifactRef{Output: "FES_20260101_000000", Key: domain.ArtifactController}
		second := domain.ArtifactRef{Output: "FES_20260102_000000", Key: domain.ArtifactController}

		require.NoError(t, inst.Install(ctx, "avatar-a", first))
		require.NoError(t, inst.Install(ctx, "avatar-b", first))
		require.NoError(t, inst.Install(ctx, "avatar-a", second))

		installed, err := inst.Installed(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]domain.ArtifactRef{"avatar-a": second, "avatar-b": first}, installed)
	})
}
