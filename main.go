package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/sabarishmetals/shopcore/lib/mypublisher"
	"github.com/sabarishmetals/shopcore/lib/mypubsub"
	"github.com/sabarishmetals/shopcore/lib/myqueue"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
	"github.com/sabarishmetals/shopcore/services/cart"
	"github.com/sabarishmetals/shopcore/services/catalog"
	"github.com/sabarishmetals/shopcore/services/checkout"
	"github.com/sabarishmetals/shopcore/services/coupon"
	"github.com/sabarishmetals/shopcore/services/pricing"
	"github.com/sabarishmetals/shopcore/services/shopsettings"
	"github.com/sabarishmetals/shopcore/services/wishlist"
)

func main() {
	c := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment as-is")
	}

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	pubsubClient, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsubClient, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	productStore, productCleanup, err := mystore.New[catalog.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productCleanup()

	categoryStore, categoryCleanup, err := mystore.New[catalog.Category](c)
	if err != nil {
		log.Fatalf("Error creating category store: %s", err)
	}
	defer categoryCleanup()

	catalogService := catalog.NewWebService(productStore, categoryStore, nower, uuider)
	catalogService.RegisterEndpoints(c, router)

	settingsStore, settingsCleanup, err := mystore.New[shopsettings.Settings](c)
	if err != nil {
		log.Fatalf("Error creating settings store: %s", err)
	}
	defer settingsCleanup()

	settingsService := shopsettings.NewWebService(settingsStore)
	settingsService.RegisterEndpoints(c, router)

	couponStore, couponCleanup, err := mystore.New[pricing.Coupon](c)
	if err != nil {
		log.Fatalf("Error creating coupon store: %s", err)
	}
	defer couponCleanup()

	couponService := coupon.NewWebService(couponStore)
	couponService.RegisterEndpoints(c, router)

	cartStore, cartCleanup, err := mystore.New[cart.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartCleanup()

	cartService := cart.NewWebService(cartStore, catalogService, pubsubClient, nower, uuider)
	err = cartService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering cart endpoints: %s", err)
	}

	wishlistStore, wishlistCleanup, err := mystore.New[wishlist.Wishlist](c)
	if err != nil {
		log.Fatalf("Error creating wishlist store: %s", err)
	}
	defer wishlistCleanup()

	wishlistService := wishlist.NewWebService(wishlistStore, catalogService, nower, uuider)
	wishlistService.RegisterEndpoints(c, router)

	orderStore, orderCleanup, err := mystore.New[checkout.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderCleanup()

	checkoutService := checkout.NewWebService(orderStore, cartService, catalogService,
		settingsService, couponService, publisher, nower, uuider, nil)
	err = checkoutService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering checkout endpoints: %s", err)
	}

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
