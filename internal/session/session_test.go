package session

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/storefront/internal/catalog"
	"github.com/mmynk/storefront/internal/ledger"
	"github.com/mmynk/storefront/internal/models"
)

func demoCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]models.Product{
		{ID: 1, Name: "Laptop", Category: "Electronics", Price: decimal.NewFromInt(1200)},
		{ID: 2, Name: "T-Shirt", Category: "Clothing", Price: decimal.NewFromInt(25)},
		{ID: 3, Name: "The Great Gatsby", Category: "Books", Price: decimal.NewFromInt(15)},
		{ID: 4, Name: "Smartphone", Category: "Electronics", Price: decimal.NewFromInt(800)},
	})
	require.NoError(t, err)
	return cat
}

func visibleIDs(s State) []int64 {
	out := make([]int64, len(s.Visible))
	for i, p := range s.Visible {
		out[i] = p.ID
	}
	return out
}

func TestInitial(t *testing.T) {
	s := Initial(demoCatalog(t))

	assert.Equal(t, catalog.All, s.Selection)
	assert.Equal(t, []int64{1, 2, 3, 4}, visibleIDs(s))
	assert.Empty(t, s.Cart)
	assert.Equal(t, "0.00", s.DisplayTotal())
}

func TestApply(t *testing.T) {
	cat := demoCatalog(t)

	t.Run("select category recomputes visible products", func(t *testing.T) {
		s, err := Apply(cat, Initial(cat), SelectCategory{Category: "Electronics"})
		require.NoError(t, err)
		assert.Equal(t, "Electronics", s.Selection)
		assert.Equal(t, []int64{1, 4}, visibleIDs(s))

		s, err = Apply(cat, s, SelectCategory{Category: catalog.All})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4}, visibleIDs(s))
	})

	t.Run("unknown category is rejected and state kept", func(t *testing.T) {
		start, err := Apply(cat, Initial(cat), SelectCategory{Category: "Books"})
		require.NoError(t, err)

		s, err := Apply(cat, start, SelectCategory{Category: "Garden"})
		assert.ErrorIs(t, err, ErrUnknownCategory)
		assert.Equal(t, "Books", s.Selection)
		assert.Equal(t, []int64{3}, visibleIDs(s))
	})

	t.Run("add looks up the catalog", func(t *testing.T) {
		s, err := Apply(cat, Initial(cat), AddToCart{ProductID: 2})
		require.NoError(t, err)
		require.Len(t, s.Cart, 1)
		assert.Equal(t, "T-Shirt", s.Cart[0].Name)
	})

	t.Run("add of a product hidden by the filter is allowed", func(t *testing.T) {
		s, err := Apply(cat, Initial(cat), SelectCategory{Category: "Books"})
		require.NoError(t, err)

		s, err = Apply(cat, s, AddToCart{ProductID: 1})
		require.NoError(t, err)
		assert.Len(t, s.Cart, 1)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := Apply(cat, Initial(cat), AddToCart{ProductID: 99})
		assert.ErrorIs(t, err, ErrUnknownProduct)
	})

	t.Run("remove of a missing line", func(t *testing.T) {
		_, err := Apply(cat, Initial(cat), RemoveFromCart{ProductID: 1})
		assert.ErrorIs(t, err, ledger.ErrLineNotFound)
	})

	t.Run("input state is not modified", func(t *testing.T) {
		start, err := Apply(cat, Initial(cat), AddToCart{ProductID: 1})
		require.NoError(t, err)
		cart := start.Cart.Clone()

		_, err = Apply(cat, start, AddToCart{ProductID: 1})
		require.NoError(t, err)
		_, err = Apply(cat, start, RemoveFromCart{ProductID: 1})
		require.NoError(t, err)

		assert.Equal(t, cart, start.Cart)
		assert.Equal(t, catalog.All, start.Selection)
	})
}

func TestSession_Do(t *testing.T) {
	r := NewRegistry(demoCatalog(t))
	s := r.Open()

	state, err := s.Do(AddToCart{ProductID: 1})
	require.NoError(t, err)
	state, err = s.Do(AddToCart{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, "2400.00", state.DisplayTotal())

	state, err = s.Do(AddToCart{ProductID: 2})
	require.NoError(t, err)
	assert.Equal(t, "2425.00", state.DisplayTotal())

	state, err = s.Do(RemoveFromCart{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, "1225.00", state.DisplayTotal())
	require.Len(t, state.Cart, 2)
	assert.Equal(t, 1, state.Cart[0].Quantity)
	assert.Equal(t, 1, state.Cart[1].Quantity)

	failed, err := s.Do(RemoveFromCart{ProductID: 3})
	assert.ErrorIs(t, err, ledger.ErrLineNotFound)
	assert.Equal(t, state, failed)
	assert.Equal(t, state, s.State())
}

func TestSession_Undo(t *testing.T) {
	r := NewRegistry(demoCatalog(t))
	s := r.Open()

	_, err := s.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)

	_, err = s.Do(AddToCart{ProductID: 1})
	require.NoError(t, err)
	_, err = s.Do(SelectCategory{Category: "Books"})
	require.NoError(t, err)
	_, err = s.Do(AddToCart{ProductID: 3})
	require.NoError(t, err)
	_, err = s.Do(AddToCart{ProductID: 99})
	require.Error(t, err)

	assert.Equal(t, 2, s.HistoryLen(), "selection and failed actions are not recorded")

	state, err := s.Undo()
	require.NoError(t, err)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, int64(1), state.Cart[0].ProductID)
	assert.Equal(t, "Books", state.Selection, "undo leaves the selection alone")

	state, err = s.Undo()
	require.NoError(t, err)
	assert.Empty(t, state.Cart)

	_, err = s.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestSession_HistoryLimit(t *testing.T) {
	r := NewRegistry(demoCatalog(t), WithHistoryLimit(2))
	s := r.Open()

	for i := 0; i < 4; i++ {
		_, err := s.Do(AddToCart{ProductID: 2})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, s.HistoryLen())

	state, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, 3, state.Cart[0].Quantity)

	state, err = s.Undo()
	require.NoError(t, err)
	assert.Equal(t, 2, state.Cart[0].Quantity)

	_, err = s.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestSession_SerializesActions(t *testing.T) {
	r := NewRegistry(demoCatalog(t))
	s := r.Open()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Do(AddToCart{ProductID: 4})
		}()
	}
	wg.Wait()

	state := s.State()
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 50, state.Cart[0].Quantity)
}

func TestRegistry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	r := NewRegistry(demoCatalog(t), WithClock(clock))

	a := r.Open()
	b := r.Open()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, r.Len())

	got, err := r.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = a.Do(AddToCart{ProductID: 1})
	require.NoError(t, err)
	assert.Empty(t, b.State().Cart, "sessions do not share carts")

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, r.End(b.ID()))
	assert.ErrorIs(t, r.End(b.ID()), ErrSessionNotFound)
	assert.Equal(t, 1, r.Len())

	now = now.Add(10 * time.Minute)
	c := r.Open()

	assert.Equal(t, 1, r.Sweep(5*time.Minute))
	_, err = r.Get(a.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(c.ID())
	assert.NoError(t, err)
}

func TestSameCart(t *testing.T) {
	line := models.CartLine{ProductID: 1, Name: "Laptop", Price: decimal.NewFromInt(1200), Quantity: 1}
	cart := models.Cart{line}

	assert.True(t, sameCart(models.Cart{}, nil))
	assert.True(t, sameCart(cart, cart.Clone()), "equal lines in distinct slices")
	assert.True(t, sameCart(cart, models.Cart{{ProductID: 1, Name: "Laptop", Price: decimal.RequireFromString("1200.00"), Quantity: 1}}))

	more := cart.Clone()
	more[0].Quantity = 2
	assert.False(t, sameCart(cart, more))

	repriced := cart.Clone()
	repriced[0].Price = decimal.NewFromInt(1100)
	assert.False(t, sameCart(cart, repriced))

	assert.False(t, sameCart(cart, append(cart.Clone(), models.CartLine{ProductID: 2, Quantity: 1})))
}

func TestSession_OnlyCartChangesAreUndoable(t *testing.T) {
	r := NewRegistry(demoCatalog(t))
	s := r.Open()

	_, err := s.Do(SelectCategory{Category: "Books"})
	require.NoError(t, err)
	assert.Equal(t, 0, s.HistoryLen())

	_, err = s.Do(AddToCart{ProductID: 1})
	require.NoError(t, err)
	_, err = s.Do(SelectCategory{Category: catalog.All})
	require.NoError(t, err)
	assert.Equal(t, 1, s.HistoryLen())

	state, err := s.Undo()
	require.NoError(t, err)
	assert.Empty(t, state.Cart)
	assert.Equal(t, catalog.All, state.Selection)
}
