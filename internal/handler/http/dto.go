package handler

import (
	"time"

	"github.com/rookgm/gopherstore/internal/models"
)

type paymentResponse struct {
	TransactionID string `json:"transactionId"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type productResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       string           `json:"price"`
	Category    categoryResponse `json:"category"`
	Quantity    int              `json:"quantity"`
	Shipping    bool             `json:"shipping"`
}

type buyerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type lineItemResponse struct {
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	Price     string           `json:"price"`
	Quantity  int              `json:"quantity"`
	LineTotal string           `json:"lineTotal"`
	Product   *productResponse `json:"product,omitempty"`
}

type orderResponse struct {
	ID            string             `json:"id"`
	Buyer         *buyerResponse     `json:"buyer,omitempty"`
	ClientOrderID string             `json:"clientOrderId,omitempty"`
	Products      []lineItemResponse `json:"products"`
	Amount        string             `json:"amount"`
	Payment       paymentResponse    `json:"payment"`
	Status        string             `json:"status"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    int    `json:"role"`
}

func newPaymentResponse(p models.Payment) paymentResponse {
	return paymentResponse{
		TransactionID: p.TransactionID,
		Amount:        p.Amount.StringFixed(2),
		Status:        p.Status,
	}
}

func newProductResponse(p *models.Product) *productResponse {
	if p == nil {
		return nil
	}
	return &productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category: categoryResponse{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		},
		Quantity: p.Quantity,
		Shipping: p.Shipping,
	}
}

func newOrderResponse(o *models.Order) orderResponse {
	resp := orderResponse{
		ID:            o.ID,
		ClientOrderID: o.ClientOrderID,
		Products:      make([]lineItemResponse, 0, len(o.Items)),
		Amount:        o.Amount.StringFixed(2),
		Payment:       newPaymentResponse(o.Payment),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     o.UpdatedAt.Format(time.RFC3339),
	}

	if o.Buyer != nil {
		resp.Buyer = &buyerResponse{ID: o.Buyer.ID, Name: o.Buyer.Name, Email: o.Buyer.Email}
	}

	for _, item := range o.Items {
		resp.Products = append(resp.Products, lineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal.StringFixed(2),
			Product:   newProductResponse(item.Product),
		})
	}

	return resp
}

func newOrdersResponse(orders []models.Order) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, newOrderResponse(&orders[i]))
	}
	return resp
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}
}
