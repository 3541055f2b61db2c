package shopsettings

import (
	"context"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
)

// Accessor is the capability other services consume.
type Accessor interface {
	GetSettings(c context.Context) (Settings, error)
}

// The whole configuration is one document under a fixed key.
const settingsUID = "settings"

type service struct {
	settingsStore mystore.Store[Settings]
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(settingsStore mystore.Store[Settings], logger mylog.Logger) *service {
	return &service{
		settingsStore: settingsStore,
		logger:        logger,
	}
}

// GetSettings returns the stored configuration, falling back to the defaults
// when the store was never configured.
func (s *service) GetSettings(c context.Context) (Settings, error) {
	settings, found, err := s.settingsStore.Get(c, settingsUID)
	if err != nil {
		return Settings{}, myerrors.NewInternalError(err)
	}
	if !found {
		return DefaultSettings(), nil
	}

	return settings, nil
}

func (s *service) updateSettings(c context.Context, settings Settings) error {
	if settings.TaxRatePercent < 0 || settings.ShippingFee < 0 || settings.FreeShippingThreshold < 0 {
		return myerrors.NewInvalidInputErrorf("rates and amounts must not be negative")
	}
	if settings.CurrencyCode == "" {
		return myerrors.NewInvalidInputErrorf("currencyCode is required")
	}

	s.logger.Log(c, settingsUID, mylog.SeverityInfo, "Updating shop settings")

	err := s.settingsStore.Put(c, settingsUID, settings)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}
