// Package servers provides primitives to interact with the openapi HTTP API.
package servers

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for ListPurchaseOrdersParamsSortBy.
const (
	CreatedAt    ListPurchaseOrdersParamsSortBy = "createdAt"
	DeliveryDate ListPurchaseOrdersParamsSortBy = "deliveryDate"
	OrderNumber  ListPurchaseOrdersParamsSortBy = "orderNumber"
	Status       ListPurchaseOrdersParamsSortBy = "status"
	SupplierName ListPurchaseOrdersParamsSortBy = "supplierName"
	TotalAmount  ListPurchaseOrdersParamsSortBy = "totalAmount"
)

// Defines values for ListPurchaseOrdersParamsSortOrder.
const (
	Asc  ListPurchaseOrdersParamsSortOrder = "asc"
	Desc ListPurchaseOrdersParamsSortOrder = "desc"
)

// Error defines model for Error.
type Error struct {
	Fields  *[]string `json:"fields,omitempty"`
	Message string    `json:"message"`
}

// LineItem defines model for LineItem.
type LineItem struct {
	Description string     `json:"description"`
	Id          types.UUID `json:"id"`
	Price       string     `json:"price"`
	ProductName *string    `json:"productName,omitempty"`
	Quantity    int        `json:"quantity"`
	Sku         *string    `json:"sku,omitempty"`
}

// Message defines model for Message.
type Message struct {
	Message string `json:"message"`
}

// NewLineItem defines model for NewLineItem.
type NewLineItem struct {
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ProductName *string          `json:"productName,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Sku         *string          `json:"sku,omitempty"`
}

// NewPurchaseOrder defines model for NewPurchaseOrder.
type NewPurchaseOrder struct {
	DeliveryDate *string          `json:"deliveryDate,omitempty"`
	Items        *[]NewLineItem   `json:"items,omitempty"`
	Supplier     *Supplier        `json:"supplier,omitempty"`
	TotalAmount  *decimal.Decimal `json:"totalAmount,omitempty"`
}

// PurchaseOrder defines model for PurchaseOrder.
type PurchaseOrder struct {
	ApprovedAt    *time.Time     `json:"approvedAt,omitempty"`
	ApprovedBy    *UserRef       `json:"approvedBy,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	CreatedBy     UserRef        `json:"createdBy"`
	DeliveredAt   *time.Time     `json:"deliveredAt,omitempty"`
	DeliveryDate  types.Date     `json:"deliveryDate"`
	Id            types.UUID     `json:"id"`
	Items         []LineItem     `json:"items"`
	OrderNumber   string         `json:"orderNumber"`
	ReceivedItems []ReceivedItem `json:"receivedItems"`
	RejectedAt    *time.Time     `json:"rejectedAt,omitempty"`
	RejectedBy    *UserRef       `json:"rejectedBy,omitempty"`
	Status        string         `json:"status"`
	Supplier      Supplier       `json:"supplier"`
	TotalAmount   string         `json:"totalAmount"`
	Version       int64          `json:"version"`
}

// PurchaseOrderPage defines model for PurchaseOrderPage.
type PurchaseOrderPage struct {
	CurrentPage int             `json:"currentPage"`
	Items       []PurchaseOrder `json:"items"`
	TotalCount  int64           `json:"totalCount"`
	TotalPages  int             `json:"totalPages"`
}

// PurchaseOrderPatch defines model for PurchaseOrderPatch.
type PurchaseOrderPatch = map[string]interface{}

// ReceivedItem defines model for ReceivedItem.
type ReceivedItem struct {
	ItemId           *string `json:"itemId,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	ReceivedQuantity *int    `json:"receivedQuantity,omitempty"`
}

// Receipt defines model for Receipt.
type Receipt struct {
	ReceivedItems *[]ReceivedItem `json:"receivedItems,omitempty"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Status *string `json:"status,omitempty"`
}

// Supplier defines model for Supplier.
type Supplier struct {
	ContactInfo *string `json:"contactInfo,omitempty"`
	Name        *string `json:"name,omitempty"`
}

// UserRef defines model for UserRef.
type UserRef struct {
	Id   types.UUID `json:"id"`
	Name string     `json:"name"`
}

// OrderID defines model for OrderID.
type OrderID = string

// ListPurchaseOrdersParams defines parameters for ListPurchaseOrders.
type ListPurchaseOrdersParams struct {
	Page         *int                               `form:"page,omitempty" json:"page,omitempty"`
	Limit        *int                               `form:"limit,omitempty" json:"limit,omitempty"`
	SortBy       *ListPurchaseOrdersParamsSortBy    `form:"sortBy,omitempty" json:"sortBy,omitempty"`
	SortOrder    *ListPurchaseOrdersParamsSortOrder `form:"sortOrder,omitempty" json:"sortOrder,omitempty"`
	Status       *string                            `form:"status,omitempty" json:"status,omitempty"`
	SupplierName *string                            `form:"supplierName,omitempty" json:"supplierName,omitempty"`
}

// ListPurchaseOrdersParamsSortBy defines parameters for ListPurchaseOrders.
type ListPurchaseOrdersParamsSortBy string

// ListPurchaseOrdersParamsSortOrder defines parameters for ListPurchaseOrders.
type ListPurchaseOrdersParamsSortOrder string

// CreatePurchaseOrderJSONRequestBody defines body for CreatePurchaseOrder for application/json ContentType.
type CreatePurchaseOrderJSONRequestBody = NewPurchaseOrder

// UpdatePurchaseOrderJSONRequestBody defines body for UpdatePurchaseOrder for application/json ContentType.
type UpdatePurchaseOrderJSONRequestBody = PurchaseOrderPatch

// ChangePurchaseOrderStatusJSONRequestBody defines body for ChangePurchaseOrderStatus for application/json ContentType.
type ChangePurchaseOrderStatusJSONRequestBody = StatusChange

// ReceivePurchaseOrderJSONRequestBody defines body for ReceivePurchaseOrder for application/json ContentType.
type ReceivePurchaseOrderJSONRequestBody = Receipt
