package tags

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlooker/internal/domain"
	"outlooker/internal/eventbus"
)

func TestSplitTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"VIP, Premium", []string{"VIP", "Premium"}},
		{"VIP,Premium,", []string{"VIP", "Premium"}},
		{" VIP ", []string{"VIP"}},
		{",,", []string{}},
		{"", []string{}},
		{"single", []string{"single"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SplitTags(c.in), "input %q", c.in)
	}
}

func TestManagerRebuildsFromLoadedPage(t *testing.T) {
	bus := eventbus.New()
	m := NewManager(bus)

	bus.Publish(eventbus.AccountsLoadedEvent{
		Page: domain.AccountPage{
			Accounts: []domain.Account{
				{Email: "a@x.com", Tags: []string{"VIP", "Premium"}},
				{Email: "b@x.com", Tags: []string{"VIP"}},
				{Email: "c@x.com", Tags: []string{" ", ""}},
			},
		},
	})

	require.Eventually(t, func() bool {
		return m.Count("VIP") == 2
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"Premium", "VIP"}, m.Names())
	assert.Equal(t, 1, m.Count("Premium"))
	assert.Equal(t, 0, m.Count("unknown"))
	assert.Equal(t, map[string]int{"VIP": 2, "Premium": 1}, m.Counts())
}

func TestManagerReplacesIndexOnNextPage(t *testing.T) {
	bus := eventbus.New()
	m := NewManager(bus)

	bus.Publish(eventbus.AccountsLoadedEvent{
		Page: domain.AccountPage{
			Accounts: []domain.Account{{Email: "a@x.com", Tags: []string{"Old"}}},
		},
	})
	require.Eventually(t, func() bool { return m.Count("Old") == 1 }, time.Second, 10*time.Millisecond)

	bus.Publish(eventbus.AccountsLoadedEvent{
		Page: domain.AccountPage{
			Accounts: []domain.Account{{Email: "b@x.com", Tags: []string{"New"}}},
		},
	})
	require.Eventually(t, func() bool { return m.Count("New") == 1 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, m.Count("Old"), "counts reflect only the page on screen")
}
