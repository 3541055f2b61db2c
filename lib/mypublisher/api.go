package mypublisher

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/sabarishmetals/shopcore/lib/myevents"
)

//go:generate mockgen -source=api.go -package mypublisher -destination publisher_mock.go Publisher
type Publisher interface {
	CreateTopic(c context.Context, topic string) error
	Publish(c context.Context, topic string, event myevents.Event) error
	RegisterEndpoints(c context.Context, router *mux.Router)
}
