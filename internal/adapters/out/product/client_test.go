package product_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderservice/internal/adapters/out/product"
	"orderservice/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductClient_GetByIDs_ReturnsProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "1,2,3", r.URL.Query().Get("ids"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"products":[
			{"id":1,"name":"Gala Apples","imageUrl":"https://cdn.example.com/apples.png"},
			{"id":3,"name":"Bosc Pears","imageUrl":"https://cdn.example.com/pears.png"}
		]}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := product.NewClient(server.URL)

	products, err := client.GetByIDs(context.Background(), []int64{1, 2, 3})

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, ports.Product{ID: 1, Name: "Gala Apples", ImageURL: "https://cdn.example.com/apples.png"}, products[0])
	assert.Equal(t, ports.Product{ID: 3, Name: "Bosc Pears", ImageURL: "https://cdn.example.com/pears.png"}, products[1])
}

func TestProductClient_GetByIDs_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"products":[]}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := product.NewClient(server.URL)

	products, err := client.GetByIDs(context.Background(), []int64{99})

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductClient_GetByIDs_ServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := product.NewClient(server.URL)

	_, err := client.GetByIDs(context.Background(), []int64{1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrServiceUnavailable)
}
