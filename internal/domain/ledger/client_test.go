package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewClient(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		client, err := NewClient("Alice Smith", "+1-555-0100", "regular")

		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "Alice Smith", client.Name)
		assert.Equal(t, "+1-555-0100", client.PhoneNumber)
		assert.Equal(t, "regular", client.Note)
		assert.NotEmpty(t, client.ID)
		assert.Len(t, client.GetDomainEvents(), 1)
	})

	t.Run("trims surrounding whitespace from name", func(t *testing.T) {
		client, err := NewClient("  Bob  ", "", "")

		require.NoError(t, err)
		assert.Equal(t, "Bob", client.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		client, err := NewClient("", "", "")

		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("fails with whitespace-only name", func(t *testing.T) {
		client, err := NewClient("   ", "", "")

		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("fails with overlong name", func(t *testing.T) {
		client, err := NewClient(strings.Repeat("a", 201), "", "")

		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestClientUpdate(t *testing.T) {
	newClient := func(t *testing.T) *Client {
		t.Helper()
		client, err := NewClient("Alice", "111", "old note")
		require.NoError(t, err)
		client.ClearDomainEvents()
		return client
	}

	t.Run("updates only provided fields", func(t *testing.T) {
		client := newClient(t)

		err := client.Update(strPtr("Alicia"), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "Alicia", client.Name)
		assert.Equal(t, "111", client.PhoneNumber)
		assert.Equal(t, "old note", client.Note)
		assert.Len(t, client.GetDomainEvents(), 1)
	})

	t.Run("updates phone and note", func(t *testing.T) {
		client := newClient(t)

		err := client.Update(nil, strPtr("222"), strPtr("new note"))

		require.NoError(t, err)
		assert.Equal(t, "Alice", client.Name)
		assert.Equal(t, "222", client.PhoneNumber)
		assert.Equal(t, "new note", client.Note)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		client := newClient(t)

		err := client.Update(strPtr("  "), nil, nil)

		assert.Error(t, err)
		assert.Equal(t, "Alice", client.Name)
	})
}
