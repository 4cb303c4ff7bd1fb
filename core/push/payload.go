// Package push gửi multicast push notification tới admin devices qua FCM.
package push

// Mode chọn hình thức gửi: chỉ data, chỉ notification block, hoặc cả hai.
// Cùng một payload, ba cấu hình deployment - không phải ba builder khác nhau.
type Mode string

const (
	ModeData         Mode = "data"         // Chỉ data message (frontend tự hiển thị)
	ModeNotification Mode = "notification" // Chỉ notification block (hệ điều hành hiển thị)
	ModeBoth         Mode = "both"         // Cả hai
)

// ParseMode chuyển string config thành Mode, mặc định ModeData
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeNotification:
		return ModeNotification
	case ModeBoth:
		return ModeBoth
	default:
		return ModeData
	}
}

// Payload là nội dung một lần multicast push, dựng mới cho mỗi dispatch,
// không persist.
type Payload struct {
	Title       string            // Tiêu đề hiển thị
	Body        string            // Nội dung hiển thị (multi-line)
	Data        map[string]string // Structured data fields cho frontend
	ClickAction string            // URL mở khi bấm vào notification
	Mode        Mode
}
