package telegram

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name      string
		botToken  string
		chatID    string
		wantError bool
	}{
		{
			name:      "valid parameters",
			botToken:  "test-token",
			chatID:    "12345",
			wantError: false,
		},
		{
			name:      "empty bot token",
			botToken:  "",
			chatID:    "12345",
			wantError: true,
		},
		{
			name:      "empty chat ID",
			botToken:  "test-token",
			chatID:    "",
			wantError: true,
		},
		{
			name:      "both empty",
			botToken:  "",
			chatID:    "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.botToken, tt.chatID)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMissingCredentials))
				assert.Nil(t, client)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, client)
			assert.Equal(t, tt.botToken, client.botToken)
			assert.Equal(t, tt.chatID, client.ChatID())
			assert.Equal(t, apiBaseURL, client.baseURL)
		})
	}
}
