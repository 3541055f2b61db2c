package orderevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/myevents"
)

const (
	TopicName              = "order"
	orderPlacedName        = TopicName + ".placed"
	orderStatusChangedName = TopicName + ".status.changed"
)

type OrderEventService interface {
	Subscribe(c context.Context) error
	OnOrderPlaced(c context.Context, topic string, event OrderPlaced) error
	OnOrderStatusChanged(c context.Context, topic string, event OrderStatusChanged) error
}

func DispatchEvent(c context.Context, reader io.Reader, service OrderEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case orderPlacedName:
		{
			event := OrderPlaced{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnOrderPlaced(c, envelope.Topic, event)
		}
	case orderStatusChangedName:
		{
			event := OrderStatusChanged{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnOrderStatusChanged(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("%s", envelope.EventTypeName))
	}
}

type OrderPlaced struct {
	OrderUID    string
	OrderNumber string
	CartUID     string
	TotalAmount int
}

func (e OrderPlaced) GetEventTypeName() string {
	return orderPlacedName
}

func (e OrderPlaced) GetAggregateName() string {
	return e.OrderUID
}

type OrderStatusChanged struct {
	OrderUID    string
	OrderNumber string
	OldStatus   string
	NewStatus   string
}

func (e OrderStatusChanged) GetEventTypeName() string {
	return orderStatusChangedName
}

func (e OrderStatusChanged) GetAggregateName() string {
	return e.OrderUID
}
