// Package delivery render nội dung email xác nhận giao hàng.
package delivery

import (
	"bytes"
	"html/template"
)

// ShipmentEmailSubject là subject cố định của email xác nhận giao hàng
const ShipmentEmailSubject = "Your Order Has Been Shipped!"

// ShipmentItem - một sản phẩm trong đơn hàng
type ShipmentItem struct {
	Name     string
	Quantity int
	Price    string
}

// ShipmentEmailData - dữ liệu render template email xác nhận giao hàng
type ShipmentEmailData struct {
	CustomerName           string
	OrderID                string
	Items                  []ShipmentItem
	Subtotal               string
	DeliveryCharge         string
	Total                  string
	TrackingID             string
	CustomerAddressLine1   string
}

// shipmentTemplate là template HTML cố định.
// html/template tự escape giá trị nên dữ liệu khách hàng không inject được markup.
var shipmentTemplate = template.Must(template.New("shipment").Parse(`<html>
<body style="font-family:Arial,sans-serif;color:#333;">
  <h2>Your order has been shipped!</h2>
  <p>Hi {{.CustomerName}},</p>
  <p>Good news - order <strong>#{{.OrderID}}</strong> is on its way.</p>
  <table style="border-collapse:collapse;width:100%;max-width:480px;">
    <tr style="border-bottom:1px solid #ddd;text-align:left;">
      <th style="padding:6px;">Item</th><th style="padding:6px;">Qty</th><th style="padding:6px;">Price</th>
    </tr>
    {{range .Items}}<tr>
      <td style="padding:6px;">{{.Name}}</td><td style="padding:6px;">{{.Quantity}}</td><td style="padding:6px;">{{.Price}}</td>
    </tr>{{end}}
  </table>
  {{if .Subtotal}}<p>Subtotal: {{.Subtotal}}</p>{{end}}
  {{if .DeliveryCharge}}<p>Delivery: {{.DeliveryCharge}}</p>{{end}}
  <p><strong>Total: {{.Total}}</strong></p>
  <p>Tracking ID: <strong>{{.TrackingID}}</strong></p>
  {{if .CustomerAddressLine1}}<p>Shipping to: {{.CustomerAddressLine1}}</p>{{end}}
  <p>Thank you for shopping with RETRO FIFTY!</p>
</body>
</html>`))

// RenderShipmentEmail render template với dữ liệu đơn hàng
func RenderShipmentEmail(data ShipmentEmailData) (string, error) {
	var buf bytes.Buffer
	if err := shipmentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
