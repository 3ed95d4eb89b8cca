// Package audit writes the storefront audit trail off the request path.
//
// Handlers hand events to a Recorder, which forwards them to a single actor.
// The actor persists each event through a Sink; failures are logged and
// dropped so an audit outage never fails a request.
package audit

import (
	"context"
	"strconv"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const serviceName = "storefront-api"

type Sink interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
}

// Messages
type OrderPlaced struct {
	OrderID    int
	CustomerID int
	Lines      []models.LineItem
}

type CustomerRegistered struct {
	Username string
}

type recorderActor struct {
	sink    Sink
	logger  *zap.Logger
	timeout time.Duration
}

func (a *recorderActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *OrderPlaced:
		lines := make([]bson.M, len(msg.Lines))
		for i, l := range msg.Lines {
			lines[i] = bson.M{"product_id": l.ProductID, "quantity": l.Quantity}
		}
		a.write(&repository.AuditLog{
			Service:  serviceName,
			Action:   "place_order",
			EntityID: strconv.Itoa(msg.OrderID),
			Data:     bson.M{"customer_id": msg.CustomerID, "lines": lines},
		})

	case *CustomerRegistered:
		a.write(&repository.AuditLog{
			Service:  serviceName,
			Action:   "register_customer",
			EntityID: msg.Username,
			Data:     bson.M{"username": msg.Username},
		})

	case *actor.Started:
		a.logger.Info("Audit actor started")

	case *actor.Stopped:
		a.logger.Info("Audit actor stopped")
	}
}

func (a *recorderActor) write(entry *repository.AuditLog) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.sink.CreateAuditLog(ctx, entry); err != nil {
		a.logger.Error("Failed to write audit log",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err))
	}
}

// Recorder is the handle the HTTP layer uses. A nil *Recorder discards
// every event, which is how the API runs without MongoDB.
type Recorder struct {
	system *actor.ActorSystem
	pid    *actor.PID
}

func NewRecorder(sink Sink, logger *zap.Logger) (*Recorder, error) {
	system := actor.NewActorSystem()

	props := actor.PropsFromProducer(func() actor.Actor {
		return &recorderActor{
			sink:    sink,
			logger:  logger.Named("audit-actor"),
			timeout: 5 * time.Second,
		}
	})
	pid, err := system.Root.SpawnNamed(props, "audit-recorder")
	if err != nil {
		return nil, err
	}

	return &Recorder{system: system, pid: pid}, nil
}

func (r *Recorder) OrderPlaced(orderID, customerID int, lines []models.LineItem) {
	if r == nil {
		return
	}
	r.system.Root.Send(r.pid, &OrderPlaced{OrderID: orderID, CustomerID: customerID, Lines: lines})
}

func (r *Recorder) CustomerRegistered(username string) {
	if r == nil {
		return
	}
	r.system.Root.Send(r.pid, &CustomerRegistered{Username: username})
}

// Stop waits for queued events to be written, then shuts the actor system
// down.
func (r *Recorder) Stop() error {
	if r == nil {
		return nil
	}
	err := r.system.Root.PoisonFuture(r.pid).Wait()
	r.system.Shutdown()
	return err
}
