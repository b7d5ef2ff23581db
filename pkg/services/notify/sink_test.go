package notify

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func TestFeed_NewestFirst(t *testing.T) {
	feed := NewFeed(zerolog.Nop(), 10)

	feed.Notify("first", domain.NotificationInfo)
	feed.Notify("second", domain.NotificationSuccess)
	feed.Notify("third", domain.NotificationWarning)

	recent := feed.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, "third", recent[0].Message)
	assert.Equal(t, domain.NotificationWarning, recent[0].Severity)
	assert.Equal(t, "first", recent[2].Message)
	assert.NotEmpty(t, recent[0].ID)
	assert.NotEqual(t, recent[0].ID, recent[1].ID)
}

func TestFeed_CapsAtLimit(t *testing.T) {
	feed := NewFeed(zerolog.Nop(), 3)

	for i := 0; i < 5; i++ {
		feed.Notify(fmt.Sprintf("message %d", i), domain.NotificationInfo)
	}

	recent := feed.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, "message 4", recent[0].Message)
	assert.Equal(t, "message 2", recent[2].Message)
}

func TestFeed_RecentReturnsCopy(t *testing.T) {
	feed := NewFeed(zerolog.Nop(), 10)
	feed.Notify("only", domain.NotificationInfo)

	recent := feed.Recent()
	recent[0].Message = "mutated"

	assert.Equal(t, "only", feed.Recent()[0].Message)
}
