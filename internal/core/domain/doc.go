// Package domain contains the core business types for SalesMate:
// products, personas, conversations, and the intent/stage vocabulary.
// Types here have no dependencies on adapters or external services.
package domain
