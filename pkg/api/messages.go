package api

// User is a registered user. PasswordHash never leaves the server.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

type Group struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	KittyBalance int64  `json:"kittyBalance"`
	AdminUserID  string `json:"adminUserId,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

// Membership is one user's standing in one group. Balance is in minor
// currency units and never positive.
type Membership struct {
	UserID         string `json:"userId"`
	GroupID        string `json:"groupId"`
	Balance        int64  `json:"balance"`
	IsAdmin        bool   `json:"isAdmin"`
	ActiveBucketID string `json:"activeBucketId,omitempty"`
	JoinedAt       int64  `json:"joinedAt"`
}

type Bucket struct {
	ID              string `json:"id"`
	GroupID         string `json:"groupId"`
	UserID          string `json:"userId"`
	UnitsInBucket   int    `json:"unitsInBucket"`
	RemainingUnits  int    `json:"remainingUnits"`
	Status          string `json:"status"`
	PurchasedAt     int64  `json:"purchasedAt"`
	PurchaseBatchID string `json:"purchaseBatchId"`
}

type Consumption struct {
	ID         string `json:"id"`
	GroupID    string `json:"groupId"`
	UserID     string `json:"userId"`
	Units      int    `json:"units"`
	BucketID   string `json:"bucketId"`
	ConsumedAt int64  `json:"consumedAt"`
}

type KittyTransaction struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	UserID    string `json:"userId"`
	Amount    int64  `json:"amount"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type JoinRequest struct {
	ID          string `json:"id"`
	GroupID     string `json:"groupId"`
	UserID      string `json:"userId"`
	Message     string `json:"message,omitempty"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"createdAt"`
	AdminUserID string `json:"adminUserId,omitempty"`
	ProcessedAt int64  `json:"processedAt,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Auth

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Groups and membership

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListMyGroupsRequest struct{}

type ListMyGroupsResponse struct {
	Memberships []*Membership `json:"memberships"`
}

type ListMembersRequest struct {
	GroupID string `json:"groupId"`
}

type ListMembersResponse struct {
	Members []*Membership `json:"members"`
}

// GetMembershipRequest reads UserID's membership, or the caller's when
// UserID is empty.
type GetMembershipRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId,omitempty"`
}

type GetMembershipResponse struct {
	Membership *Membership `json:"membership"`
}

type TransferAdminRequest struct {
	GroupID        string `json:"groupId"`
	NewAdminUserID string `json:"newAdminUserId"`
}

type TransferAdminResponse struct{}

// Join requests

type RequestJoinRequest struct {
	GroupID string `json:"groupId"`
	Message string `json:"message,omitempty"`
}

type RequestJoinResponse struct {
	RequestID string `json:"requestId"`
}

type ApproveJoinRequest struct {
	GroupID   string `json:"groupId"`
	RequestID string `json:"requestId"`
	Reason    string `json:"reason,omitempty"`
}

type ApproveJoinResponse struct{}

type DenyJoinRequest struct {
	GroupID   string `json:"groupId"`
	RequestID string `json:"requestId"`
	Reason    string `json:"reason"`
}

type DenyJoinResponse struct{}

// ListJoinRequestsRequest filters by Status ("pending", "approved",
// "denied"); empty lists all.
type ListJoinRequestsRequest struct {
	GroupID string `json:"groupId"`
	Status  string `json:"status,omitempty"`
}

type ListJoinRequestsResponse struct {
	Requests []*JoinRequest `json:"requests"`
}

// Balance and kitty

// AdjustBalanceRequest is sent by the group admin. Negative amounts record
// debt, positive amounts record repayment.
type AdjustBalanceRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
	Amount  int64  `json:"amount"`
}

type AdjustBalanceResponse struct {
	Balance int64 `json:"balance"`
}

type ContributeRequest struct {
	GroupID string `json:"groupId"`
	Amount  int64  `json:"amount"`
	Comment string `json:"comment,omitempty"`
}

type ContributeResponse struct {
	TransactionID string `json:"transactionId"`
	KittyBalance  int64  `json:"kittyBalance"`
}

type ListKittyTransactionsRequest struct {
	GroupID string `json:"groupId"`
}

type ListKittyTransactionsResponse struct {
	Transactions []*KittyTransaction `json:"transactions"`
}

// Inventory

type PurchaseRequest struct {
	GroupID        string `json:"groupId"`
	BucketCount    int    `json:"bucketCount"`
	UnitsPerBucket int    `json:"unitsPerBucket"`
}

type PurchaseResponse struct {
	BucketIDs []string `json:"bucketIds"`
}

type ConsumeRequest struct {
	GroupID string `json:"groupId"`
	Units   int    `json:"units"`
}

type ConsumeResponse struct {
	ConsumptionID  string `json:"consumptionId"`
	BucketID       string `json:"bucketId"`
	RemainingUnits int    `json:"remainingUnits"`
	ActiveBucketID string `json:"activeBucketId,omitempty"`
}

type ListBucketsRequest struct {
	GroupID string `json:"groupId"`
}

type ListBucketsResponse struct {
	Buckets []*Bucket `json:"buckets"`
}

type GetInventoryRequest struct {
	GroupID string `json:"groupId"`
}

type GetInventoryResponse struct {
	Buckets          int    `json:"buckets"`
	ActiveBuckets    int    `json:"activeBuckets"`
	CompletedBuckets int    `json:"completedBuckets"`
	PurchasedUnits   int    `json:"purchasedUnits"`
	RemainingUnits   int    `json:"remainingUnits"`
	ConsumedUnits    int    `json:"consumedUnits"`
	ActiveBucketID   string `json:"activeBucketId,omitempty"`
	Reconciled       bool   `json:"reconciled"`
}

type ListConsumptionsRequest struct {
	GroupID string `json:"groupId"`
}

type ListConsumptionsResponse struct {
	Consumptions []*Consumption `json:"consumptions"`
}
