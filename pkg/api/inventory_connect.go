package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const InventoryServiceName = "kitty.v1.InventoryService"

const (
	InventoryServicePurchaseProcedure         = "/kitty.v1.InventoryService/Purchase"
	InventoryServiceConsumeProcedure          = "/kitty.v1.InventoryService/Consume"
	InventoryServiceListBucketsProcedure      = "/kitty.v1.InventoryService/ListBuckets"
	InventoryServiceGetInventoryProcedure     = "/kitty.v1.InventoryService/GetInventory"
	InventoryServiceListConsumptionsProcedure = "/kitty.v1.InventoryService/ListConsumptions"
)

// InventoryServiceClient is a client for the kitty.v1.InventoryService service.
type InventoryServiceClient interface {
	Purchase(context.Context, *connect.Request[PurchaseRequest]) (*connect.Response[PurchaseResponse], error)
	Consume(context.Context, *connect.Request[ConsumeRequest]) (*connect.Response[ConsumeResponse], error)
	ListBuckets(context.Context, *connect.Request[ListBucketsRequest]) (*connect.Response[ListBucketsResponse], error)
	GetInventory(context.Context, *connect.Request[GetInventoryRequest]) (*connect.Response[GetInventoryResponse], error)
	ListConsumptions(context.Context, *connect.Request[ListConsumptionsRequest]) (*connect.Response[ListConsumptionsResponse], error)
}

// NewInventoryServiceClient constructs a client for the kitty.v1.InventoryService service.
func NewInventoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InventoryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opt := clientOptions(opts)
	return &inventoryServiceClient{
		purchase:         connect.NewClient[PurchaseRequest, PurchaseResponse](httpClient, baseURL+InventoryServicePurchaseProcedure, opt),
		consume:          connect.NewClient[ConsumeRequest, ConsumeResponse](httpClient, baseURL+InventoryServiceConsumeProcedure, opt),
		listBuckets:      connect.NewClient[ListBucketsRequest, ListBucketsResponse](httpClient, baseURL+InventoryServiceListBucketsProcedure, opt),
		getInventory:     connect.NewClient[GetInventoryRequest, GetInventoryResponse](httpClient, baseURL+InventoryServiceGetInventoryProcedure, opt),
		listConsumptions: connect.NewClient[ListConsumptionsRequest, ListConsumptionsResponse](httpClient, baseURL+InventoryServiceListConsumptionsProcedure, opt),
	}
}

type inventoryServiceClient struct {
	purchase         *connect.Client[PurchaseRequest, PurchaseResponse]
	consume          *connect.Client[ConsumeRequest, ConsumeResponse]
	listBuckets      *connect.Client[ListBucketsRequest, ListBucketsResponse]
	getInventory     *connect.Client[GetInventoryRequest, GetInventoryResponse]
	listConsumptions *connect.Client[ListConsumptionsRequest, ListConsumptionsResponse]
}

func (c *inventoryServiceClient) Purchase(ctx context.Context, req *connect.Request[PurchaseRequest]) (*connect.Response[PurchaseResponse], error) {
	return c.purchase.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) Consume(ctx context.Context, req *connect.Request[ConsumeRequest]) (*connect.Response[ConsumeResponse], error) {
	return c.consume.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) ListBuckets(ctx context.Context, req *connect.Request[ListBucketsRequest]) (*connect.Response[ListBucketsResponse], error) {
	return c.listBuckets.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) GetInventory(ctx context.Context, req *connect.Request[GetInventoryRequest]) (*connect.Response[GetInventoryResponse], error) {
	return c.getInventory.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) ListConsumptions(ctx context.Context, req *connect.Request[ListConsumptionsRequest]) (*connect.Response[ListConsumptionsResponse], error) {
	return c.listConsumptions.CallUnary(ctx, req)
}

// InventoryServiceHandler is implemented by the server side of kitty.v1.InventoryService.
//
// Methods act on the caller's own buckets in the named group.
type InventoryServiceHandler interface {
	Purchase(context.Context, *connect.Request[PurchaseRequest]) (*connect.Response[PurchaseResponse], error)
	Consume(context.Context, *connect.Request[ConsumeRequest]) (*connect.Response[ConsumeResponse], error)
	ListBuckets(context.Context, *connect.Request[ListBucketsRequest]) (*connect.Response[ListBucketsResponse], error)
	GetInventory(context.Context, *connect.Request[GetInventoryRequest]) (*connect.Response[GetInventoryResponse], error)
	ListConsumptions(context.Context, *connect.Request[ListConsumptionsRequest]) (*connect.Response[ListConsumptionsResponse], error)
}

// NewInventoryServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewInventoryServiceHandler(svc InventoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return "/" + InventoryServiceName + "/", routes(map[string]http.Handler{
		InventoryServicePurchaseProcedure:         connect.NewUnaryHandler(InventoryServicePurchaseProcedure, svc.Purchase, opt),
		InventoryServiceConsumeProcedure:          connect.NewUnaryHandler(InventoryServiceConsumeProcedure, svc.Consume, opt),
		InventoryServiceListBucketsProcedure:      connect.NewUnaryHandler(InventoryServiceListBucketsProcedure, svc.ListBuckets, opt),
		InventoryServiceGetInventoryProcedure:     connect.NewUnaryHandler(InventoryServiceGetInventoryProcedure, svc.GetInventory, opt),
		InventoryServiceListConsumptionsProcedure: connect.NewUnaryHandler(InventoryServiceListConsumptionsProcedure, svc.ListConsumptions, opt),
	})
}
