package dto

// EmailItemInput - một sản phẩm trong email xác nhận giao hàng
type EmailItemInput struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price,omitempty"`
}

// SendEmailInput dùng cho gửi email xác nhận giao hàng (tầng transport)
type SendEmailInput struct {
	To                   string           `json:"to" validate:"required,email"`
	CustomerName         string           `json:"customerName" validate:"required"`
	OrderID              string           `json:"orderId" validate:"required"`
	Items                []EmailItemInput `json:"items" validate:"required,min=1,dive"`
	Subtotal             string           `json:"subtotal,omitempty"`
	DeliveryCharge       string           `json:"deliveryCharge,omitempty"`
	Total                string           `json:"total" validate:"required"`
	TrackingID           string           `json:"trackingId" validate:"required"`
	CustomerAddressLine1 string           `json:"customerAddressLine1,omitempty"`
}
