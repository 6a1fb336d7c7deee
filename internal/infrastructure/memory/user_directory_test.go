package memory

import (
	"sync"
	"testing"

	"github.com/go-otp-whatsapp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirectory_GetOrCreate_CreatesOnce(t *testing.T) {
	d := NewUserDirectory()

	u := d.GetOrCreate("912345678", "Ana")
	assert.Equal(t, domain.UserRecord{Phone: "912345678", Name: "Ana", ProfileCompleted: false}, u)

	again := d.GetOrCreate("912345678", "Beatriz")
	assert.Equal(t, "Ana", again.Name, "name from the first call must be preserved")
}

func TestUserDirectory_Get(t *testing.T) {
	d := NewUserDirectory()
	_, ok := d.Get("912345678")
	assert.False(t, ok)

	d.GetOrCreate("912345678", "Ana")
	u, ok := d.Get("912345678")
	require.True(t, ok)
	assert.Equal(t, "Ana", u.Name)
}

func TestUserDirectory_ConcurrentGetOrCreate(t *testing.T) {
	d := NewUserDirectory()
	names := make(chan string, 32)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names <- d.GetOrCreate("k", string(rune('A'+i))).Name
		}(i)
	}
	wg.Wait()
	close(names)

	first, _ := d.Get("k")
	for n := range names {
		assert.Equal(t, first.Name, n)
	}
}
