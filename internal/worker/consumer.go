package worker

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/rabbitmq/queue"
)

type eventQueue interface {
	Consume(out chan<- queue.Event, strategy retry.Strategy) error
}

type eventHandler interface {
	HandleEvent(ctx context.Context, ev queue.Event)
}

// Consumer drains business events from the broker into a pool of handler
// goroutines.
type Consumer struct {
	queue   eventQueue
	handler eventHandler
}

// NewConsumer creates the event consumer.
func NewConsumer(q eventQueue, h eventHandler) *Consumer {
	return &Consumer{
		queue:   q,
		handler: h,
	}
}

// Run starts workerCount handler goroutines and blocks until ctx is done and
// all workers have drained.
func (c *Consumer) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	var wg sync.WaitGroup
	evChan := make(chan queue.Event, workerCount*10)

	go func() {
		if err := c.queue.Consume(evChan, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume events")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("worker-%d shutting down", id)
					return
				case ev, ok := <-evChan:
					if !ok {
						zlog.Logger.Printf("worker-%d channel closed, shutting down", id)
						return
					}

					c.handler.HandleEvent(ctx, ev)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Print("event consumer stopped")
}
