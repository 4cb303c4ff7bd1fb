package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRenderShipmentEmail kiểm tra template render đầy đủ thông tin đơn hàng
func TestRenderShipmentEmail(t *testing.T) {
	html, err := RenderShipmentEmail(ShipmentEmailData{
		CustomerName: "Jane",
		OrderID:      "A1",
		Items: []ShipmentItem{
			{Name: "Vintage Tee", Quantity: 2, Price: "1500"},
			{Name: "Denim Jacket", Quantity: 1, Price: "3000"},
		},
		Subtotal:             "6000",
		DeliveryCharge:       "100",
		Total:                "6100",
		TrackingID:           "TRK-123",
		CustomerAddressLine1: "123 Main St",
	})

	require.NoError(t, err)
	assert.Contains(t, html, "Hi Jane,")
	assert.Contains(t, html, "#A1")
	assert.Contains(t, html, "Vintage Tee")
	assert.Contains(t, html, "Denim Jacket")
	assert.Contains(t, html, "Subtotal: 6000")
	assert.Contains(t, html, "Delivery: 100")
	assert.Contains(t, html, "Total: 6100")
	assert.Contains(t, html, "TRK-123")
	assert.Contains(t, html, "123 Main St")
}

// TestRenderShipmentEmailOptionalFields - field optional rỗng thì không render
func TestRenderShipmentEmailOptionalFields(t *testing.T) {
	html, err := RenderShipmentEmail(ShipmentEmailData{
		CustomerName: "Jane",
		OrderID:      "A1",
		Items:        []ShipmentItem{{Name: "Tee", Quantity: 1, Price: "1500"}},
		Total:        "1500",
		TrackingID:   "TRK-456",
	})

	require.NoError(t, err)
	assert.NotContains(t, html, "Subtotal:")
	assert.NotContains(t, html, "Delivery:")
	assert.NotContains(t, html, "Shipping to:")
	assert.Contains(t, html, "Total: 1500")
}

// TestRenderShipmentEmailEscaping - dữ liệu khách hàng không inject được HTML
func TestRenderShipmentEmailEscaping(t *testing.T) {
	html, err := RenderShipmentEmail(ShipmentEmailData{
		CustomerName: "<script>alert(1)</script>",
		OrderID:      "A1",
		Items:        []ShipmentItem{{Name: "Tee", Quantity: 1, Price: "1500"}},
		Total:        "1500",
		TrackingID:   "TRK-789",
	})

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
