package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier with valid fields", func(t *testing.T) {
		s, err := NewSupplier("Acme Parts", "Jane Roe", "+1-555-0100", "jane@acme.test", "alice")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, s.ID)
		assert.Equal(t, "Acme Parts", s.Name)
		assert.Equal(t, "Jane Roe", s.ContactName)
		assert.Equal(t, "alice", s.CreatedBy)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewSupplier("   ", "", "", "", "alice")
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects missing creator", func(t *testing.T) {
		_, err := NewSupplier("Acme Parts", "", "", "", "")
		assert.True(t, shared.IsValidation(err))
	})
}
