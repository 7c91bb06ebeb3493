package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quickbites/delivery-api/internal/catalog"
	"github.com/quickbites/delivery-api/internal/order"
)

// createOrderHandler prices and persists a new order, then assigns a rider.
//
// @Summary  Create an order and assign a rider
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    request body order.CreateOrderRequest true "order payload"
// @Success  201 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{} "missing fields or unknown menu item"
// @Failure  404 {object} map[string]interface{} "no available riders (order persisted)"
// @Router   /orders [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json body"})
			return
		}

		o, riderAssigned, err := svc.Create(c.Request.Context(), req)
		switch {
		case err == nil:
		case errors.Is(err, order.ErrMissingFields), errors.Is(err, order.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		case errors.Is(err, catalog.ErrItemNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error creating order", "error": err.Error()})
			return
		}

		if !riderAssigned {
			// Partial success: the order exists, assignment must be retried.
			c.JSON(http.StatusNotFound, gin.H{
				"message": "No available riders found",
				"order":   o,
			})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created and rider assigned successfully",
			"order":   o,
		})
	}
}

// @Summary  List all orders
// @Tags     orders
// @Produce  json
// @Success  200 {array} order.Order
// @Router   /orders [get]
func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching orders", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// @Summary  Get an order by id
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} order.Order
// @Failure  400 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Router   /orders/{id} [get]
func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}
		o, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching order", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// @Summary  List a customer's orders
// @Tags     orders
// @Produce  json
// @Param    customerId path string true "customer id"
// @Success  200 {array} order.Order
// @Router   /customers/{customerId}/orders [get]
func listOrdersByCustomerHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerId")
		if _, err := uuid.Parse(customerID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer ID"})
			return
		}
		orders, err := repo.ListByCustomer(c.Request.Context(), customerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching customer orders", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// @Summary  List a restaurant's orders
// @Tags     orders
// @Produce  json
// @Param    restaurantId path string true "restaurant id"
// @Success  200 {array} order.Order
// @Router   /restaurants/{restaurantId}/orders [get]
func listOrdersByRestaurantHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID := c.Param("restaurantId")
		if _, err := uuid.Parse(restaurantID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid restaurant ID"})
			return
		}
		orders, err := repo.ListByRestaurant(c.Request.Context(), restaurantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching restaurant orders", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// updateOrderStatusHandler is the administrative override: any valid status
// value may be written over any current one.
//
// @Summary  Set an order's status
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id path string true "order id"
// @Param    request body order.UpdateStatusRequest true "new status"
// @Success  200 {object} map[string]interface{}
// @Failure  400 {object} map[string]interface{}
// @Failure  404 {object} map[string]interface{}
// @Router   /orders/{id}/status [patch]
func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json body"})
			return
		}

		o, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
		switch {
		case err == nil:
		case errors.Is(err, order.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status value"})
			return
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating order status", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": o})
	}
}
