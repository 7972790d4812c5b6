package depot_test

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aretw0/depot"
	"github.com/aretw0/depot/pkg/resources"
)

// Example_basic creates an order, reads it back and deletes it.
func Example_basic() {
	app, err := depot.New(depot.WithBuiltinSeeds(false))
	if err != nil {
		log.Fatal(err)
	}

	orders := app.Orders()

	id, _, err := orders.Create(resources.Order{Task: "build an API"})
	if err != nil {
		log.Fatal(err)
	}

	order, err := orders.Get(id)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %s\n", id, order.Task)

	if err := orders.Delete(id); err != nil {
		log.Fatal(err)
	}
	_, err = orders.Get(id)
	fmt.Println(err)
	// Output:
	// todo1: build an API
	// orders: "todo1" not found
}

// ExampleApp_Handler serves the collections over HTTP.
func ExampleApp_Handler() {
	app, err := depot.New()
	if err != nil {
		log.Fatal(err)
	}

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v2/orders", "application/json", strings.NewReader(`{"task":"ship it"}`))
	if err != nil {
		log.Fatal(err)
	}
	resp.Body.Close()
	fmt.Println(resp.StatusCode, resp.Header.Get("Location"))

	resp, err = http.Get(srv.URL + "/api/v2/orders/todo42")
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Println(resp.StatusCode, strings.TrimSpace(string(body)))
	// Output:
	// 201 /api/v2/orders/todo4
	// 404 {"message":"Order #todo42 doesn't exist"}
}
