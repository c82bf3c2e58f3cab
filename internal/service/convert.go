package service

import (
	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{
		ID:           g.ID,
		Name:         g.Name,
		KittyBalance: g.KittyBalance,
		AdminUserID:  g.AdminUserID,
		CreatedAt:    g.CreatedAt,
	}
}

func toAPIMembership(m *models.Membership) *api.Membership {
	return &api.Membership{
		UserID:         m.UserID,
		GroupID:        m.GroupID,
		Balance:        m.Balance,
		IsAdmin:        m.IsAdmin,
		ActiveBucketID: m.ActiveBucketID,
		JoinedAt:       m.JoinedAt,
	}
}

func toAPIBucket(b *models.Bucket) *api.Bucket {
	return &api.Bucket{
		ID:              b.ID,
		GroupID:         b.GroupID,
		UserID:          b.UserID,
		UnitsInBucket:   b.UnitsInBucket,
		RemainingUnits:  b.RemainingUnits,
		Status:          string(b.Status),
		PurchasedAt:     b.PurchasedAt,
		PurchaseBatchID: b.PurchaseBatchID,
	}
}

func toAPIConsumption(c *models.Consumption) *api.Consumption {
	return &api.Consumption{
		ID:         c.ID,
		GroupID:    c.GroupID,
		UserID:     c.UserID,
		Units:      c.Units,
		BucketID:   c.BucketID,
		ConsumedAt: c.ConsumedAt,
	}
}

func toAPIKittyTransaction(kt *models.KittyTransaction) *api.KittyTransaction {
	return &api.KittyTransaction{
		ID:        kt.ID,
		GroupID:   kt.GroupID,
		UserID:    kt.UserID,
		Amount:    kt.Amount,
		Comment:   kt.Comment,
		CreatedAt: kt.CreatedAt,
	}
}

func toAPIJoinRequest(r *models.JoinRequest) *api.JoinRequest {
	return &api.JoinRequest{
		ID:          r.ID,
		GroupID:     r.GroupID,
		UserID:      r.UserID,
		Message:     r.Message,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		AdminUserID: r.AdminUserID,
		ProcessedAt: r.ProcessedAt,
		Reason:      r.Reason,
	}
}

// convertAll maps a slice with fn, returning an empty (not nil) slice.
func convertAll[M, A any](in []M, fn func(M) A) []A {
	out := make([]A, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
