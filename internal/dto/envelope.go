// Package dto holds the request and response shapes of the JSON API.
// Field names are camelCase; money and quantities are shopspring decimals
// rendered as JSON numbers.
package dto

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DataResponse wraps every successful read.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Count   *int        `json:"count,omitempty"`
}

// CreatedResponse is returned with 201 by every create endpoint.
type CreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// MessageResponse acknowledges updates and deletes.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Data(v interface{}) DataResponse {
	return DataResponse{Success: true, Data: v}
}

// List adds the element count next to the data.
func List[T any](items []T) DataResponse {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return DataResponse{Success: true, Data: items, Count: &n}
}

func Created(message string, id uint) CreatedResponse {
	return CreatedResponse{Success: true, Message: message, ID: id}
}

func Message(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}
