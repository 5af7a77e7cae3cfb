package notify

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*telego.Message)
	return msg, args.Error(1)
}

func TestNotify_SendsTitleAndURL(t *testing.T) {
	sender := &mockSender{}
	logBuf := &bytes.Buffer{}

	n := &Telegram{bot: sender, chatID: parseChatID("12345"), logger: log.New(logBuf, "", 0)}

	var captured *telego.SendMessageParams
	sender.
		On("SendMessage", mock.Anything, mock.AnythingOfType("*telego.SendMessageParams")).
		Return(&telego.Message{}, nil).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*telego.SendMessageParams)
		}).
		Once()

	n.Notify(context.Background(), "T", "https://x/post")

	sender.AssertExpectations(t)
	require.NotNil(t, captured)
	assert.Equal(t, int64(12345), captured.ChatID.ID)
	assert.Contains(t, captured.Text, "T")
	assert.Contains(t, captured.Text, "https://x/post")
	assert.Contains(t, logBuf.String(), "telegram notification sent")
}

func TestNotify_UnconfiguredSkipsSilently(t *testing.T) {
	logBuf := &bytes.Buffer{}

	n := NewTelegram("", "", log.New(logBuf, "", 0))
	n.Notify(context.Background(), "T", "https://x/post")

	assert.Contains(t, logBuf.String(), "skipping notification")
}

func TestNotify_SendFailureIsLoggedNotRaised(t *testing.T) {
	sender := &mockSender{}
	logBuf := &bytes.Buffer{}

	n := &Telegram{bot: sender, chatID: parseChatID("1"), logger: log.New(logBuf, "", 0)}

	sender.
		On("SendMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("telegram down")).
		Once()

	n.Notify(context.Background(), "T", "https://x/post")

	sender.AssertExpectations(t)
	assert.Contains(t, logBuf.String(), "telegram notification failed")
}

func TestParseChatID(t *testing.T) {
	assert.Equal(t, int64(-100123), parseChatID("-100123").ID)
	assert.Equal(t, "@health_channel", parseChatID("@health_channel").Username)
}
