package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/kitty/internal/ledger"
	"github.com/mmynk/kitty/pkg/api"
)

// InventoryService implements the Connect InventoryService. Every method
// works on the caller's own buckets.
type InventoryService struct {
	ledger *ledger.Ledger
}

var _ api.InventoryServiceHandler = (*InventoryService)(nil)

// NewInventoryService creates a new InventoryService on top of the ledger.
func NewInventoryService(l *ledger.Ledger) *InventoryService {
	return &InventoryService{ledger: l}
}

// Purchase buys buckets for the caller.
func (s *InventoryService) Purchase(ctx context.Context, req *connect.Request[api.PurchaseRequest]) (*connect.Response[api.PurchaseResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	ids, err := s.ledger.Purchase(ctx, req.Msg.GroupID, userID, req.Msg.BucketCount, req.Msg.UnitsPerBucket)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.PurchaseResponse{BucketIDs: ids}), nil
}

// Consume draws units from the caller's active bucket.
func (s *InventoryService) Consume(ctx context.Context, req *connect.Request[api.ConsumeRequest]) (*connect.Response[api.ConsumeResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	res, err := s.ledger.Consume(ctx, req.Msg.GroupID, userID, req.Msg.Units)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ConsumeResponse{
		ConsumptionID:  res.ConsumptionID,
		BucketID:       res.BucketID,
		RemainingUnits: res.RemainingUnits,
		ActiveBucketID: res.ActiveBucketID,
	}), nil
}

// ListBuckets lists the caller's buckets, oldest first.
func (s *InventoryService) ListBuckets(ctx context.Context, req *connect.Request[api.ListBucketsRequest]) (*connect.Response[api.ListBucketsResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	buckets, err := s.ledger.ListBuckets(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListBucketsResponse{Buckets: convertAll(buckets, toAPIBucket)}), nil
}

// GetInventory summarizes the caller's buckets against their consumptions.
func (s *InventoryService) GetInventory(ctx context.Context, req *connect.Request[api.GetInventoryRequest]) (*connect.Response[api.GetInventoryResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	report, err := s.ledger.Inventory(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetInventoryResponse{
		Buckets:          report.Buckets,
		ActiveBuckets:    report.ActiveBuckets,
		CompletedBuckets: report.CompletedBuckets,
		PurchasedUnits:   report.Purchased,
		RemainingUnits:   report.Remaining,
		ConsumedUnits:    report.Consumed,
		ActiveBucketID:   report.ActiveBucketID,
		Reconciled:       report.Reconciled(),
	}), nil
}

// ListConsumptions lists the caller's consumptions, newest first.
func (s *InventoryService) ListConsumptions(ctx context.Context, req *connect.Request[api.ListConsumptionsRequest]) (*connect.Response[api.ListConsumptionsResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	consumptions, err := s.ledger.ListConsumptions(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListConsumptionsResponse{
		Consumptions: convertAll(consumptions, toAPIConsumption),
	}), nil
}
