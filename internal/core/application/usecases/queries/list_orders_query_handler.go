package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersResponse is one page of orders. TotalPages is 0 when nothing matches.
type ListOrdersResponse struct {
	Items       []OrderView
	TotalPages  int
	CurrentPage int
	TotalCount  int64
}

// ListOrdersQueryHandler reads pages of orders straight from the database, joining
// the users table for display names.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type orderRow struct {
	ID                  uuid.UUID
	OrderNumber         string
	SupplierName        string
	SupplierContactInfo string
	TotalAmount         decimal.Decimal
	DeliveryDate        time.Time
	Status              string
	CreatedBy           uuid.UUID
	CreatedByName       string
	CreatedAt           time.Time
	ApprovedBy          *uuid.UUID
	ApprovedByName      string
	ApprovedAt          *time.Time
	RejectedBy          *uuid.UUID
	RejectedByName      string
	RejectedAt          *time.Time
	DeliveredAt         *time.Time
	Version             int64
}

type itemRow struct {
	OrderID     uuid.UUID
	ID          uuid.UUID
	SKU         string `gorm:"column:sku"`
	ProductName string
	Description string
	Quantity    int
	Price       decimal.Decimal
}

type receivedItemRow struct {
	OrderID          uuid.UUID
	ItemID           uuid.UUID
	ReceivedQuantity int
	Notes            string
}

const selectOrders = `
	SELECT
		o.id, o.order_number, o.supplier_name, o.supplier_contact_info,
		o.total_amount, o.delivery_date, o.status,
		o.created_by, COALESCE(cu.name, '') AS created_by_name, o.created_at,
		o.approved_by, COALESCE(au.name, '') AS approved_by_name, o.approved_at,
		o.rejected_by, COALESCE(ru.name, '') AS rejected_by_name, o.rejected_at,
		o.delivered_at, o.version
	FROM purchase_orders o
	LEFT JOIN users cu ON cu.id = o.created_by
	LEFT JOIN users au ON au.id = o.approved_by
	LEFT JOIN users ru ON ru.id = o.rejected_by`

// Handle returns the requested page. A page past the end yields no items.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	where, args := filters(query)
	db := h.db.WithContext(ctx)

	var total int64
	if err := db.Raw("SELECT COUNT(*) FROM purchase_orders o"+where, args...).Scan(&total).Error; err != nil {
		return ListOrdersResponse{}, errs.NewStorageError("count purchase orders", err)
	}

	response := ListOrdersResponse{
		Items:       make([]OrderView, 0),
		CurrentPage: query.Page(),
		TotalCount:  total,
		TotalPages:  int(totalPages(total, query.Limit())),
	}
	if total == 0 || query.IsBeyond(total) {
		return response, nil
	}

	direction := strings.ToUpper(string(query.SortDirection()))
	orderBy := fmt.Sprintf(" ORDER BY o.%s %s, o.id %s LIMIT ? OFFSET ?",
		pq.QuoteIdentifier(sortColumns[query.SortBy()]), direction, direction)

	var rows []orderRow
	pageArgs := append(append([]any{}, args...), query.Limit(), query.offset())
	if err := db.Raw(selectOrders+where+orderBy, pageArgs...).Scan(&rows).Error; err != nil {
		return ListOrdersResponse{}, errs.NewStorageError("select purchase orders", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var items []itemRow
	if err := db.Raw(`
		SELECT order_id, id, sku, product_name, description, quantity, price
		FROM purchase_order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&items).Error; err != nil {
		return ListOrdersResponse{}, errs.NewStorageError("select purchase order items", err)
	}

	var received []receivedItemRow
	if err := db.Raw(`
		SELECT order_id, item_id, received_quantity, notes
		FROM purchase_order_received_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&received).Error; err != nil {
		return ListOrdersResponse{}, errs.NewStorageError("select received items", err)
	}

	itemsByOrder := make(map[uuid.UUID][]LineItemView, len(rows))
	for _, item := range items {
		itemID, err := kernel.UUIDFromBytes(item.ID[:])
		if err != nil {
			return ListOrdersResponse{}, err
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], LineItemView{
			ID:          itemID,
			SKU:         item.SKU,
			ProductName: item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	receivedByOrder := make(map[uuid.UUID][]ReceivedItemView, len(rows))
	for _, item := range received {
		itemID, err := kernel.UUIDFromBytes(item.ItemID[:])
		if err != nil {
			return ListOrdersResponse{}, err
		}
		receivedByOrder[item.OrderID] = append(receivedByOrder[item.OrderID], ReceivedItemView{
			ItemID:           itemID,
			ReceivedQuantity: item.ReceivedQuantity,
			Notes:            item.Notes,
		})
	}

	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return ListOrdersResponse{}, err
		}
		view.Items = append(view.Items, itemsByOrder[row.ID]...)
		view.ReceivedItems = append(view.ReceivedItems, receivedByOrder[row.ID]...)
		response.Items = append(response.Items, view)
	}

	return response, nil
}

// filters builds the WHERE clause shared by the count and the page query.
func filters(query ListOrdersQuery) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if status := query.Status(); status != nil {
		conditions = append(conditions, "o.status = ?")
		args = append(args, status.String())
	}
	if name := query.SupplierName(); name != "" {
		conditions = append(conditions, `o.supplier_name ILIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(name)+"%")
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r orderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	createdBy, err := kernel.UUIDFromBytes(r.CreatedBy[:])
	if err != nil {
		return OrderView{}, err
	}
	approvedBy, err := userRef(r.ApprovedBy, r.ApprovedByName)
	if err != nil {
		return OrderView{}, err
	}
	rejectedBy, err := userRef(r.RejectedBy, r.RejectedByName)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:          id,
		OrderNumber: r.OrderNumber,
		Supplier: SupplierView{
			Name:        r.SupplierName,
			ContactInfo: r.SupplierContactInfo,
		},
		Items:         make([]LineItemView, 0),
		TotalAmount:   r.TotalAmount,
		DeliveryDate:  r.DeliveryDate.UTC(),
		Status:        r.Status,
		CreatedBy:     UserRef{ID: createdBy, Name: r.CreatedByName},
		CreatedAt:     r.CreatedAt.UTC(),
		ApprovedBy:    approvedBy,
		ApprovedAt:    r.ApprovedAt,
		RejectedBy:    rejectedBy,
		RejectedAt:    r.RejectedAt,
		ReceivedItems: make([]ReceivedItemView, 0),
		DeliveredAt:   r.DeliveredAt,
		Version:       r.Version,
	}, nil
}

func userRef(id *uuid.UUID, name string) (*UserRef, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // no reviewer yet
	}
	restored, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &UserRef{ID: restored, Name: name}, nil
}
