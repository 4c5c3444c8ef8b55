// Package model declares the persisted entities and their column constraints.
package model

// All lists every table in migration order (parents before children).
func All() []interface{} {
	return []interface{}{
		&Product{},
		&ServiceOrder{},
		&Appointment{},
		&Transaction{},
		&TransactionItem{},
		&Credential{},
	}
}
