package events

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() models.Order {
	return models.Order{
		Ref:       "20250908130500-abc",
		Items:     []models.CartItem{{ID: "1", Name: "Mug", Price: 10, Quantity: 2}},
		Total:     20,
		Timestamp: time.Date(2025, 9, 8, 13, 5, 0, 0, time.UTC),
	}
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.PublishOrder(context.Background(), OrderPlaced{}))
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.PublishOrder(context.Background(), OrderPlaced{SessionID: "s1", Order: sampleOrder()}))
	require.Len(t, r.Events(), 1)
	assert.Equal(t, "s1", r.Events()[0].SessionID)

	r.Err = errors.New("broker down")
	assert.Error(t, r.PublishOrder(context.Background(), OrderPlaced{}))
	assert.Len(t, r.Events(), 1)
}

func TestOrderPlacedJSON(t *testing.T) {
	body, err := json.Marshal(OrderPlaced{SessionID: "s1", Order: sampleOrder()})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"session_id":"s1"`)
	assert.Contains(t, string(body), `"ref":"20250908130500-abc"`)
}

func TestAMQPPublisher(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set")
	}
	pool, err := NewChannelPool(url, "storefront_orders_test", 2)
	require.NoError(t, err)
	defer pool.Close()

	p := NewAMQPPublisher(pool, "storefront_orders_test")
	assert.NoError(t, p.PublishOrder(context.Background(), OrderPlaced{SessionID: "s1", Order: sampleOrder()}))
}
