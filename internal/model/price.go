package model

// PriceRecord is one daily observation for a symbol as stored by the collector.
// Date is passed through verbatim from the store (ISO-8601 by convention).
type PriceRecord struct {
	Date  string   `json:"date"`
	Close float64  `json:"close"`
	RSI   *float64 `json:"rsi"` // nil when the store holds NULL
}

// SymbolSummary describes what the store holds for one symbol.
type SymbolSummary struct {
	Symbol    string
	Rows      int
	FirstDate string
	LastDate  string
}
