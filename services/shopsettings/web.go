package shopsettings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sabarishmetals/shopcore/lib/mycontext"
	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/myhttp"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewWebService(settingsStore mystore.Store[Settings]) *webService {
	logger := mylog.New("shopsettings")
	return &webService{
		service: NewService(settingsStore, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/settings", s.settingsPage()).Methods("GET")
	router.HandleFunc("/api/settings", s.updateSettingsPage()).Methods("PUT")
}

// GetSettings implements the Accessor capability.
func (s *webService) GetSettings(c context.Context) (Settings, error) {
	return s.service.GetSettings(c)
}

func (s *webService) settingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		settings, err := s.service.GetSettings(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, settings)
	}
}

func (s *webService) updateSettingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		settings := Settings{}
		err := json.NewDecoder(r.Body).Decode(&settings)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		err = s.service.updateSettings(c, settings)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, settings)
	}
}
