package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDAllocator(t *testing.T) {
	t.Run("sequences start at 1 and increase", func(t *testing.T) {
		a := NewIDAllocator()
		assert.Equal(t, 1, a.Next(KindUser))
		assert.Equal(t, 2, a.Next(KindUser))
		assert.Equal(t, 3, a.Next(KindUser))
	})

	t.Run("kinds are independent", func(t *testing.T) {
		a := NewIDAllocator()
		assert.Equal(t, 1, a.Next(KindUser))
		assert.Equal(t, 1, a.Next(KindAssignment))
		assert.Equal(t, 1, a.Next(KindGrade))
		assert.Equal(t, 1, a.Next(KindSchedule))
		assert.Equal(t, 1, a.Next(KindNotification))
		assert.Equal(t, 2, a.Next(KindUser))
	})

	t.Run("platform instances do not share sequences", func(t *testing.T) {
		p1, p2 := New(), New()
		u1, err := p1.CreateAdmin("A", "a@edu.com", "pw")
		assert.NoError(t, err)
		u2, err := p2.CreateAdmin("B", "b@edu.com", "pw")
		assert.NoError(t, err)
		assert.Equal(t, u1.ID, u2.ID)
	})
}
