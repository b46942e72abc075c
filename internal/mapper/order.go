package mapper

import (
	"github.com/Additional-Code/ricebowl/internal/dto"
	"github.com/Additional-Code/ricebowl/internal/entity"
	"github.com/Additional-Code/ricebowl/pkg/errorbank"
)

// OrderFromRequest translates an inbound payload into the domain entity.
// A nil request maps to a nil order. An unknown status symbol is rejected
// rather than swallowed.
func OrderFromRequest(req *dto.OrderRequest) (*entity.Order, error) {
	if req == nil {
		return nil, nil
	}

	order := &entity.Order{
		OrderID:         req.OrderID,
		Customer:        customerFromDTO(req.Customer),
		DeliveryAddress: addressFromDTO(req.DeliveryAddress),
		DeliveryTime:    req.DeliveryTime,
	}

	if req.Status != "" {
		status, err := entity.ParseStatus(req.Status)
		if err != nil {
			return nil, errorbank.BadRequest(err.Error())
		}
		order.Status = status
	}
	if req.Items != nil {
		order.Items = itemsFromDTO(*req.Items)
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.TotalAmount != nil {
		amount := *req.TotalAmount
		order.TotalAmount = &amount
	}

	return order, nil
}

// PatchFromRequest extracts only the supplied fields of a payload into a
// partial update. Omitted and null fields stay nil; an explicitly empty item
// list survives as a non-nil empty slice.
func PatchFromRequest(req *dto.OrderRequest) (*entity.OrderPatch, error) {
	if req == nil {
		return nil, nil
	}

	patch := &entity.OrderPatch{
		Customer:        customerFromDTO(req.Customer),
		DeliveryAddress: addressFromDTO(req.DeliveryAddress),
		DeliveryTime:    req.DeliveryTime,
		PaymentMethod:   req.PaymentMethod,
	}

	if req.Status != "" {
		status, err := entity.ParseStatus(req.Status)
		if err != nil {
			return nil, errorbank.BadRequest(err.Error())
		}
		patch.Status = &status
	}
	if req.Items != nil {
		items := itemsFromDTO(*req.Items)
		if items == nil {
			items = []entity.OrderItem{}
		}
		patch.Items = &items
	}
	if req.TotalAmount != nil {
		amount := *req.TotalAmount
		patch.TotalAmount = &amount
	}

	return patch, nil
}

// OrderToResponse translates a stored order into its wire representation,
// adding the derived item count. A nil order maps to a nil response.
func OrderToResponse(order *entity.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}

	resp := &dto.OrderResponse{
		OrderID:         order.OrderID,
		Customer:        customerToDTO(order.Customer),
		Items:           itemsToDTO(order.Items),
		DeliveryAddress: addressToDTO(order.DeliveryAddress),
		Status:          string(order.Status),
		DeliveryTime:    order.DeliveryTime,
		PaymentMethod:   order.PaymentMethod,
		TotalAmount:     order.TotalAmount,
		ItemCount:       order.ItemCount(),
	}
	if !order.OrderDate.IsZero() {
		date := order.OrderDate
		resp.OrderDate = &date
	}
	return resp
}

func customerFromDTO(d *dto.CustomerDTO) *entity.Customer {
	if d == nil {
		return nil
	}
	return &entity.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
	}
}

func customerToDTO(c *entity.Customer) *dto.CustomerDTO {
	if c == nil {
		return nil
	}
	return &dto.CustomerDTO{
		CustomerID:  c.CustomerID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
	}
}

func addressFromDTO(d *dto.DeliveryAddressDTO) *entity.DeliveryAddress {
	if d == nil {
		return nil
	}
	return &entity.DeliveryAddress{
		Street:       d.Street,
		City:         d.City,
		State:        d.State,
		PostalCode:   d.PostalCode,
		Country:      d.Country,
		Instructions: d.Instructions,
	}
}

func addressToDTO(a *entity.DeliveryAddress) *dto.DeliveryAddressDTO {
	if a == nil {
		return nil
	}
	return &dto.DeliveryAddressDTO{
		Street:       a.Street,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Instructions: a.Instructions,
	}
}

func itemsFromDTO(dtos []dto.OrderItemDTO) []entity.OrderItem {
	if dtos == nil {
		return nil
	}
	items := make([]entity.OrderItem, len(dtos))
	for i, d := range dtos {
		items[i] = entity.OrderItem{
			ItemID:       d.ItemID,
			RiceType:     d.RiceType,
			Quantity:     d.Quantity,
			PricePerUnit: d.PricePerUnit,
			SpiceLevel:   d.SpiceLevel,
			Notes:        d.Notes,
		}
	}
	return items
}

func itemsToDTO(items []entity.OrderItem) []dto.OrderItemDTO {
	if items == nil {
		return nil
	}
	dtos := make([]dto.OrderItemDTO, len(items))
	for i, item := range items {
		dtos[i] = dto.OrderItemDTO{
			ItemID:       item.ItemID,
			RiceType:     item.RiceType,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
			SpiceLevel:   item.SpiceLevel,
			Notes:        item.Notes,
		}
	}
	return dtos
}
