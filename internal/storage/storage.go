package storage

import "swapVault/internal/model"

// QuoteSink defines a sink for computed quotes.
type QuoteSink interface {
	PutQuoteBatch(quotes []model.QuoteRecord) error
}
