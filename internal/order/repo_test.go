package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestGroupRows(t *testing.T) {
	o1 := Order{ID: "o1", UserID: "u1", TotalPrice: "25.00", Status: StatusPending}
	o2 := Order{ID: "o2", UserID: "u2", TotalPrice: "5.00", Status: StatusShipped}

	flat := []orderRow{
		{order: o1, itemID: strp("i1"), productID: strp("a"), productName: strp("Prod A"), quantity: intp(2), price: strp("10.00")},
		{order: o1, itemID: strp("i2"), productID: strp("b"), productName: strp("Prod B"), quantity: intp(1), price: strp("5.00")},
		{order: o2, itemID: strp("i3"), productID: strp("b"), productName: strp("Prod B"), quantity: intp(1), price: strp("5.00")},
	}

	got := groupRows(flat)

	require.Len(t, got, 2)
	assert.Equal(t, "o1", got[0].ID)
	require.Len(t, got[0].Items, 2)
	// item insertion order preserved within the group
	assert.Equal(t, "i1", got[0].Items[0].ID)
	assert.Equal(t, "i2", got[0].Items[1].ID)
	assert.Equal(t, "o1", got[0].Items[0].OrderID)

	assert.Equal(t, "o2", got[1].ID)
	require.Len(t, got[1].Items, 1)
	assert.Equal(t, "i3", got[1].Items[0].ID)
}

func TestGroupRows_OrderWithoutItems(t *testing.T) {
	flat := []orderRow{{order: Order{ID: "o1", TotalPrice: "0.00"}}}

	got := groupRows(flat)

	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Items)
	assert.Empty(t, got[0].Items)
}

func TestGroupRows_Empty(t *testing.T) {
	assert.Empty(t, groupRows(nil))
}
