// Package notification dựng và điều phối push notification cho đơn hàng mới.
package notification

import (
	"fmt"

	"retro_notify/core/push"
)

// Giá trị fallback khi đơn hàng thiếu thông tin khách
const (
	defaultCustomerName = "Unknown"
	defaultInstaHandle  = "N/A"
)

// notificationTitle là tiêu đề cố định cho mọi đơn hàng mới
const notificationTitle = "New Order Received"

// OrderInfo là các field của đơn hàng mà builder cần
type OrderInfo struct {
	OrderID      string
	CustomerName string
	InstaHandle  string
}

// Builder dựng push payload từ thông tin đơn hàng.
// Hàm Build thuần túy, không I/O: cùng input cho ra payload giống hệt nhau.
type Builder struct {
	clickAction string
	mode        push.Mode
}

// NewBuilder tạo Builder với click-action URL và mode từ config
func NewBuilder(clickAction string, mode push.Mode) *Builder {
	return &Builder{
		clickAction: clickAction,
		mode:        mode,
	}
}

// Build dựng payload cho một đơn hàng.
// CustomerName/InstaHandle thiếu được thay bằng giá trị fallback.
func (b *Builder) Build(info OrderInfo) push.Payload {
	customerName := info.CustomerName
	if customerName == "" {
		customerName = defaultCustomerName
	}
	instaHandle := info.InstaHandle
	if instaHandle == "" {
		instaHandle = defaultInstaHandle
	}

	// Body dùng được cho cả notification display và structured log
	body := fmt.Sprintf(
		"-------------------------\n"+
			"Order ID: #%s\n"+
			"Name: %s\n"+
			"Insta: %s\n"+
			"-------------------------",
		info.OrderID, customerName, instaHandle,
	)

	return push.Payload{
		Title: notificationTitle,
		Body:  body,
		Data: map[string]string{
			"title":        notificationTitle,
			"body":         body,
			"orderId":      info.OrderID,
			"customerName": customerName,
			"instaHandle":  instaHandle,
			"click_action": b.clickAction,
		},
		ClickAction: b.clickAction,
		Mode:        b.mode,
	}
}
