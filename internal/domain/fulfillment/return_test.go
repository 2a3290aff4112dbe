package fulfillment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReturn(t *testing.T) *Return {
	t.Helper()
	ret, err := NewReturn("RET-1", "order-1", "damaged on arrival")
	require.NoError(t, err)
	return ret
}

func TestNewReturn(t *testing.T) {
	t.Run("creates pending return", func(t *testing.T) {
		ret := newReturn(t)
		assert.Equal(t, ReturnStatusPending, ret.Status)
		assert.True(t, ret.RefundTotal.IsZero())
	})

	t.Run("requires number and order", func(t *testing.T) {
		_, err := NewReturn("", "order-1", "")
		require.Error(t, err)

		_, err = NewReturn("RET-1", "", "")
		require.Error(t, err)
	})
}

func TestReturnAddItem(t *testing.T) {
	t.Run("derives refund from unit price", func(t *testing.T) {
		ret := newReturn(t)
		require.NoError(t, ret.AddItem("prod-1", 3, decimal.NewFromInt(25), "wrong size"))

		require.Len(t, ret.Items, 1)
		assert.True(t, ret.Items[0].RefundAmount.Equal(decimal.NewFromInt(75)))
		assert.True(t, ret.RefundTotal.Equal(decimal.NewFromInt(75)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		ret := newReturn(t)
		require.Error(t, ret.AddItem("prod-1", 0, decimal.NewFromInt(25), ""))
	})
}

func TestReturnWorkflow(t *testing.T) {
	t.Run("approve then process", func(t *testing.T) {
		ret := newReturn(t)
		require.NoError(t, ret.AddItem("prod-1", 2, decimal.NewFromInt(10), ""))

		require.NoError(t, ret.Approve())
		assert.Equal(t, ReturnStatusApproved, ret.Status)
		assert.NotNil(t, ret.ReceivedDate)

		require.NoError(t, ret.Process("user-1"))
		assert.Equal(t, ReturnStatusProcessed, ret.Status)
		assert.NotNil(t, ret.ProcessedAt)
		assert.Equal(t, "user-1", ret.ProcessedBy)
	})

	t.Run("cannot approve without items", func(t *testing.T) {
		ret := newReturn(t)
		require.Error(t, ret.Approve())
	})

	t.Run("cannot process unapproved return", func(t *testing.T) {
		ret := newReturn(t)
		require.NoError(t, ret.AddItem("prod-1", 2, decimal.NewFromInt(10), ""))

		require.Error(t, ret.Process("user-1"))
	})

	t.Run("cannot process rejected return", func(t *testing.T) {
		ret := newReturn(t)
		require.NoError(t, ret.AddItem("prod-1", 2, decimal.NewFromInt(10), ""))
		require.NoError(t, ret.Reject())

		require.Error(t, ret.Process("user-1"))
	})

	t.Run("cannot add items after approval", func(t *testing.T) {
		ret := newReturn(t)
		require.NoError(t, ret.AddItem("prod-1", 2, decimal.NewFromInt(10), ""))
		require.NoError(t, ret.Approve())

		require.Error(t, ret.AddItem("prod-2", 1, decimal.NewFromInt(5), ""))
	})
}
