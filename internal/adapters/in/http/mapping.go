package http

import (
	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/application/usecases/queries"
	"purchasing/internal/generated/servers"

	"github.com/oapi-codegen/runtime/types"
)

const moneyPlaces = 2

func toCreateOrderInput(body servers.NewPurchaseOrder) commands.CreateOrderInput {
	in := commands.CreateOrderInput{
		TotalAmount:  body.TotalAmount,
		DeliveryDate: deref(body.DeliveryDate),
	}
	if body.Supplier != nil {
		in.SupplierName = deref(body.Supplier.Name)
		in.SupplierContactInfo = deref(body.Supplier.ContactInfo)
	}
	if body.Items != nil {
		in.Items = make([]commands.LineItemInput, 0, len(*body.Items))
		for _, item := range *body.Items {
			in.Items = append(in.Items, commands.LineItemInput{
				SKU:         deref(item.Sku),
				ProductName: deref(item.ProductName),
				Description: deref(item.Description),
				Quantity:    item.Quantity,
				Price:       item.Price,
			})
		}
	}
	return in
}

// toReceivedItemInputs keeps nil apart from an empty list: a missing receivedItems key
// is rejected while an empty list is a valid delivery.
func toReceivedItemInputs(items *[]servers.ReceivedItem) []commands.ReceivedItemInput {
	if items == nil {
		return nil
	}
	inputs := make([]commands.ReceivedItemInput, 0, len(*items))
	for _, item := range *items {
		inputs = append(inputs, commands.ReceivedItemInput{
			ItemID:           deref(item.ItemId),
			ReceivedQuantity: item.ReceivedQuantity,
			Notes:            deref(item.Notes),
		})
	}
	return inputs
}

func toPurchaseOrderPage(page queries.ListOrdersResponse) servers.PurchaseOrderPage {
	items := make([]servers.PurchaseOrder, 0, len(page.Items))
	for _, view := range page.Items {
		items = append(items, toPurchaseOrder(view))
	}
	return servers.PurchaseOrderPage{
		Items:       items,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		TotalCount:  page.TotalCount,
	}
}

func toPurchaseOrder(view queries.OrderView) servers.PurchaseOrder {
	po := servers.PurchaseOrder{
		Id:          view.ID.Bytes(),
		OrderNumber: view.OrderNumber,
		Supplier: servers.Supplier{
			Name:        &view.Supplier.Name,
			ContactInfo: optional(view.Supplier.ContactInfo),
		},
		Items:         make([]servers.LineItem, 0, len(view.Items)),
		TotalAmount:   view.TotalAmount.StringFixed(moneyPlaces),
		DeliveryDate:  types.Date{Time: view.DeliveryDate},
		Status:        view.Status,
		CreatedBy:     toUserRef(view.CreatedBy),
		CreatedAt:     view.CreatedAt,
		ApprovedAt:    view.ApprovedAt,
		RejectedAt:    view.RejectedAt,
		ReceivedItems: make([]servers.ReceivedItem, 0, len(view.ReceivedItems)),
		DeliveredAt:   view.DeliveredAt,
		Version:       view.Version,
	}

	if view.ApprovedBy != nil {
		ref := toUserRef(*view.ApprovedBy)
		po.ApprovedBy = &ref
	}
	if view.RejectedBy != nil {
		ref := toUserRef(*view.RejectedBy)
		po.RejectedBy = &ref
	}

	for _, item := range view.Items {
		po.Items = append(po.Items, servers.LineItem{
			Id:          item.ID.Bytes(),
			Sku:         optional(item.SKU),
			ProductName: optional(item.ProductName),
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price.StringFixed(moneyPlaces),
		})
	}
	for _, item := range view.ReceivedItems {
		itemID := item.ItemID.String()
		quantity := item.ReceivedQuantity
		po.ReceivedItems = append(po.ReceivedItems, servers.ReceivedItem{
			ItemId:           &itemID,
			ReceivedQuantity: &quantity,
			Notes:            optional(item.Notes),
		})
	}

	return po
}

func toUserRef(ref queries.UserRef) servers.UserRef {
	return servers.UserRef{Id: ref.ID.Bytes(), Name: ref.Name}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
