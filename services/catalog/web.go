package catalog

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
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// NewWebService exposes the catalog over HTTP and doubles as the catalog
// Accessor for in-process consumers.
func NewWebService(productStore mystore.Store[Product], categoryStore mystore.Store[Category], nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("catalog")
	return &webService{
		service: NewService(productStore, categoryStore, nower, uuider, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/product", s.listProductsPage()).Methods("GET")
	router.HandleFunc("/api/product", s.createProductPage()).Methods("POST")
	router.HandleFunc("/api/product/{productUID}", s.productDetailsPage()).Methods("GET")
	router.HandleFunc("/api/product/{productUID}/name", s.renameProductPage()).Methods("PUT")
	router.HandleFunc("/api/product/slug/{slug}", s.productBySlugPage()).Methods("GET")

	router.HandleFunc("/api/category", s.listCategoriesPage()).Methods("GET")
	router.HandleFunc("/api/category", s.createCategoryPage()).Methods("POST")
	router.HandleFunc("/api/category/{categoryUID}/name", s.renameCategoryPage()).Methods("PUT")
}

// GetProduct implements the Accessor capability.
func (s *webService) GetProduct(c context.Context, productUID string) (Product, bool, error) {
	return s.service.GetProduct(c, productUID)
}

// GetProducts implements the Accessor capability.
func (s *webService) GetProducts(c context.Context, productUIDs []string) ([]ProductSnapshot, error) {
	return s.service.GetProducts(c, productUIDs)
}

// DecrementStock implements the Accessor capability.
func (s *webService) DecrementStock(c context.Context, productUID string, quantity int) error {
	return s.service.DecrementStock(c, productUID, quantity)
}

func (s *webService) listProductsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		query := ProductQuery{
			OnlyFeatured: r.URL.Query().Get("featured") == "true",
			OnlyActive:   r.URL.Query().Get("admin") != "true",
			Search:       r.URL.Query().Get("search"),
		}

		if categorySlug := r.URL.Query().Get("category"); categorySlug != "" {
			category, found, err := s.service.categoryBySlug(c, categorySlug)
			if err != nil {
				errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
				return
			}
			if !found {
				errorWriter.Write(c, w, http.StatusOK, []Product{})
				return
			}
			query.CategoryUID = category.UID
		}

		products, err := s.service.listProducts(c, query)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) createProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := ProductRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		product, err := s.service.createProduct(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) productDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product, err := s.service.getProduct(c, mux.Vars(r)["productUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) productBySlugPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product, err := s.service.getProductBySlug(c, mux.Vars(r)["slug"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

type renameRequest struct {
	Name string
}

func (s *webService) renameProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := renameRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		product, err := s.service.renameProduct(c, mux.Vars(r)["productUID"], req.Name)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

type categoryRequest struct {
	Name        string
	Description string
	ImageRef    string
}

func (s *webService) listCategoriesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		categories, err := s.service.listCategories(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, categories)
	}
}

func (s *webService) createCategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := categoryRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		category, err := s.service.createCategory(c, req.Name, req.Description, req.ImageRef)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, category)
	}
}

func (s *webService) renameCategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := renameRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		category, err := s.service.renameCategory(c, mux.Vars(r)["categoryUID"], req.Name)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, category)
	}
}
