package push

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retro_notify/core/common"
)

// fakeSender giả lập FCM messaging client, trả về kết quả theo kịch bản
type fakeSender struct {
	calls     []*messaging.MulticastMessage
	responses []*messaging.BatchResponse
	err       error
}

func (f *fakeSender) SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.calls = append(f.calls, message)
	if f.err != nil {
		return nil, f.err
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

// batchResponse dựng BatchResponse với success/fail theo thứ tự token
func batchResponse(results ...bool) *messaging.BatchResponse {
	resp := &messaging.BatchResponse{}
	for _, ok := range results {
		sr := &messaging.SendResponse{Success: ok}
		if !ok {
			sr.Error = errors.New("registration-token-not-registered")
			resp.FailureCount++
		} else {
			resp.SuccessCount++
		}
		resp.Responses = append(resp.Responses, sr)
	}
	return resp
}

// TestDispatchPartialFailure - token lỗi được đếm và report, không coi là error
func TestDispatchPartialFailure(t *testing.T) {
	sender := &fakeSender{responses: []*messaging.BatchResponse{batchResponse(true, false, true)}}
	dispatcher := NewDispatcher(sender)

	result, err := dispatcher.Dispatch(context.Background(), Payload{Mode: ModeData}, []string{"tok-a", "tok-b", "tok-c"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "tok-b", result.Failures[0].Token)
	assert.Equal(t, "registration-token-not-registered", result.Failures[0].Reason)
}

// TestDispatchTotalFailure - gateway không truy cập được thì trả về error NOTIF_003
func TestDispatchTotalFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	dispatcher := NewDispatcher(sender)

	result, err := dispatcher.Dispatch(context.Background(), Payload{Mode: ModeData}, []string{"tok-a"})

	require.Error(t, err)
	assert.Nil(t, result)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.ErrCodeNotifGateway.Code, appErr.Code.Code)
	assert.Equal(t, common.StatusInternalServerError, appErr.StatusCode)
}

// TestDispatchEmptyTokens - tập token rỗng bị chặn trước khi chạm gateway
func TestDispatchEmptyTokens(t *testing.T) {
	sender := &fakeSender{}
	dispatcher := NewDispatcher(sender)

	result, err := dispatcher.Dispatch(context.Background(), Payload{Mode: ModeData}, nil)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, sender.calls)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.ErrCodeNotifEmptyTokens.Code, appErr.Code.Code)
}

// TestDispatchBatchSplit - quá 500 token phải chia thành nhiều request
func TestDispatchBatchSplit(t *testing.T) {
	tokens := make([]string, 750)
	for i := range tokens {
		tokens[i] = "tok"
	}

	full := batchResponse()
	full.SuccessCount = 500
	for i := 0; i < 500; i++ {
		full.Responses = append(full.Responses, &messaging.SendResponse{Success: true})
	}
	rest := batchResponse()
	rest.SuccessCount = 250
	for i := 0; i < 250; i++ {
		rest.Responses = append(rest.Responses, &messaging.SendResponse{Success: true})
	}

	sender := &fakeSender{responses: []*messaging.BatchResponse{full, rest}}
	dispatcher := NewDispatcher(sender)

	result, err := dispatcher.Dispatch(context.Background(), Payload{Mode: ModeData}, tokens)

	require.NoError(t, err)
	require.Len(t, sender.calls, 2)
	assert.Len(t, sender.calls[0].Tokens, 500)
	assert.Len(t, sender.calls[1].Tokens, 250)
	assert.Equal(t, 750, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
}

// TestBuildMessageModes kiểm tra message được dựng đúng theo từng mode
func TestBuildMessageModes(t *testing.T) {
	dispatcher := NewDispatcher(&fakeSender{})
	payload := Payload{
		Title:       "New Order Received",
		Body:        "body",
		Data:        map[string]string{"orderId": "A1"},
		ClickAction: "https://retro-fifty.web.app",
	}

	t.Run("ModeData chỉ có data", func(t *testing.T) {
		payload.Mode = ModeData
		msg := dispatcher.buildMessage(payload, []string{"tok"})

		assert.Equal(t, payload.Data, msg.Data)
		assert.Nil(t, msg.Notification)
		assert.Nil(t, msg.Webpush)
	})

	t.Run("ModeNotification có notification và webpush link", func(t *testing.T) {
		payload.Mode = ModeNotification
		msg := dispatcher.buildMessage(payload, []string{"tok"})

		assert.Nil(t, msg.Data)
		require.NotNil(t, msg.Notification)
		assert.Equal(t, "New Order Received", msg.Notification.Title)
		require.NotNil(t, msg.Webpush)
		assert.Equal(t, "https://retro-fifty.web.app", msg.Webpush.FCMOptions.Link)
	})

	t.Run("ModeBoth có cả hai", func(t *testing.T) {
		payload.Mode = ModeBoth
		msg := dispatcher.buildMessage(payload, []string{"tok"})

		assert.Equal(t, payload.Data, msg.Data)
		assert.NotNil(t, msg.Notification)
	})
}

// TestUnavailableDispatcher - không có messaging client thì fail có kiểm soát
func TestUnavailableDispatcher(t *testing.T) {
	dispatcher := NewUnavailableDispatcher()

	result, err := dispatcher.Dispatch(context.Background(), Payload{Mode: ModeData}, []string{"tok"})

	require.Error(t, err)
	assert.Nil(t, result)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.ErrCodeNotifGateway.Code, appErr.Code.Code)
	assert.Equal(t, common.StatusServiceUnavailable, appErr.StatusCode)
}

// TestParseMode kiểm tra parse mode từ config string
func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeData, ParseMode("data"))
	assert.Equal(t, ModeNotification, ParseMode("notification"))
	assert.Equal(t, ModeBoth, ParseMode("both"))
	// Giá trị lạ fallback về data
	assert.Equal(t, ModeData, ParseMode("invalid"))
	assert.Equal(t, ModeData, ParseMode(""))
}
