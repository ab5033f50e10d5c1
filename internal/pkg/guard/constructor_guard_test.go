package guard_test

import (
	"errors"
	"sync"
	"testing"

	"purchasing/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	notConstructed := errors.New("not constructed")

	t.Run("should return nil for constructed guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(notConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("should return supplied error for zero value", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, notConstructed, g.Validate(notConstructed))
	})

	t.Run("should survive copies", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, cp.Validate(notConstructed))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	errSupplierNotConstructed := errors.New("supplier must be created via NewSupplier")

	type supplier struct {
		name  string
		guard guard.ConstructorGuard
	}

	newSupplier := func(name string) (supplier, error) {
		if name == "" {
			return supplier{}, errors.New("supplier name is required")
		}
		return supplier{name: name, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("should pass for constructed value", func(t *testing.T) {
		s, err := newSupplier("Acme")

		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errSupplierNotConstructed))
		assert.Equal(t, "Acme", s.name)
	})

	t.Run("should fail for zero value", func(t *testing.T) {
		var s supplier

		err := s.guard.Validate(errSupplierNotConstructed)

		require.ErrorIs(t, err, errSupplierNotConstructed)
	})
}

func TestConstructorGuard_DefaultError(t *testing.T) {
	var g guard.ConstructorGuard

	err := g.Validate(nil)

	require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	assert.Equal(t, "object must be created via its constructor", err.Error())
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(nil))
		}()
	}
	wg.Wait()
}
