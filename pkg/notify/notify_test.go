package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCollectorDrain(t *testing.T) {
	c := NewCollector()
	c.Notify(Notification{Severity: Success, Title: "a"})
	c.Notify(Notification{Severity: Error, Title: "b"})

	got := c.Drain()
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Title)
	assert.Empty(t, c.Drain())
}

func TestLoggedForwards(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := NewCollector()
	n := Logged(zap.New(core), c)

	n.Notify(Notification{Severity: Info, Title: "hello", Message: "world"})

	assert.Len(t, c.Drain(), 1)
	entries := logs.FilterMessage("toast").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "hello", entries[0].ContextMap()["title"])
	}
}
