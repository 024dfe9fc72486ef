package events

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/defect-atlas/pkg/models/api"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishFansOut(t *testing.T) {
	hub := NewHub()
	id1, ch1 := hub.Subscribe()
	_, ch2 := hub.Subscribe()

	hub.Publish(context.Background(), domain.DatasetEvent{Type: domain.EventDatasetUpdated, Origin: "import", Records: 3})

	assert.Equal(t, "import", (<-ch1).Origin)
	assert.Equal(t, 3, (<-ch2).Records)

	hub.Unsubscribe(id1)
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, hub.Subscribers())
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, ch := hub.Subscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(context.Background(), domain.DatasetEvent{Records: i})
	}

	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_WebsocketStream(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	at := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	hub.Publish(context.Background(), domain.DatasetEvent{Type: domain.EventDatasetUpdated, Origin: "line-a", Records: 12, At: at})

	var got api.DatasetEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, api.DatasetEvent{Type: domain.EventDatasetUpdated, Origin: "line-a", Records: 12, At: at}, got)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}
