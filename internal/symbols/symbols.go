// Package symbols holds the fixed set of tickers the service will look up.
//
// The allow-list is data compiled into the binary, not a query against the
// store: a symbol is accepted or rejected before any storage is touched.
package symbols

import (
	"errors"
	"fmt"
	"strings"
)

// Category groups assets the way the front-end registry does.
type Category string

const (
	CategoryCrypto    Category = "crypto"
	CategoryEquity    Category = "equity"
	CategoryBond      Category = "bond"
	CategoryCommodity Category = "commodity"
	CategoryREIT      Category = "reit"
	CategoryThematic  Category = "thematic"
)

// Symbol is a canonical (uppercase, allow-listed) ticker.
type Symbol string

func (s Symbol) String() string { return string(s) }

// Asset is one entry of the allow-list.
type Asset struct {
	Symbol   Symbol   `json:"symbol"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

var defaultAssets = []Asset{
	// Crypto
	{"BTC", "Bitcoin", CategoryCrypto},
	{"ETH", "Ethereum", CategoryCrypto},
	{"BNB", "BNB", CategoryCrypto},
	{"SOL", "Solana", CategoryCrypto},
	{"XRP", "XRP", CategoryCrypto},
	{"LTC", "Litecoin", CategoryCrypto},
	// Global equity
	{"VWRA", "Vanguard FTSE All-World UCITS ETF", CategoryEquity},
	{"IWDA", "iShares Core MSCI World UCITS ETF", CategoryEquity},
	{"VT", "Vanguard Total World Stock ETF", CategoryEquity},
	// Regional equity
	{"CSPX", "iShares Core S&P 500 UCITS ETF", CategoryEquity},
	{"VTI", "Vanguard Total Stock Market ETF", CategoryEquity},
	{"EXSA", "iShares STOXX Europe 600 UCITS ETF", CategoryEquity},
	{"VWO", "Vanguard FTSE Emerging Markets ETF", CategoryEquity},
	// Fixed income
	{"BND", "Vanguard Total Bond Market ETF", CategoryBond},
	{"EMB", "iShares J.P. Morgan USD EM Bond ETF", CategoryBond},
	// Commodities
	{"GLD", "SPDR Gold Shares", CategoryCommodity},
	{"DBC", "Invesco DB Commodity Index Tracking Fund", CategoryCommodity},
	// Real estate
	{"VNQ", "Vanguard Real Estate ETF", CategoryREIT},
	// Thematic & sector
	{"QQQ", "Invesco QQQ Trust", CategoryThematic},
	{"ICLN", "iShares Global Clean Energy ETF", CategoryThematic},
	{"VHYL", "Vanguard FTSE All-World High Dividend Yield ETF", CategoryThematic},
}

// ErrInvalidSymbol is matched by every *InvalidSymbolError.
var ErrInvalidSymbol = errors.New("invalid symbol")

// InvalidSymbolError carries the input exactly as the caller sent it.
type InvalidSymbolError struct {
	Input string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol: %s", e.Input)
}

func (e *InvalidSymbolError) Is(target error) bool { return target == ErrInvalidSymbol }

// AllowList is an immutable set of canonical tickers. It is safe for
// concurrent use because nothing mutates it after construction.
type AllowList struct {
	assets []Asset
	index  map[Symbol]int
}

// NewAllowList builds an allow-list from assets. Symbols are uppercased and
// duplicates keep their first entry.
func NewAllowList(assets []Asset) *AllowList {
	l := &AllowList{
		assets: make([]Asset, 0, len(assets)),
		index:  make(map[Symbol]int, len(assets)),
	}
	for _, a := range assets {
		a.Symbol = Symbol(strings.ToUpper(string(a.Symbol)))
		if _, dup := l.index[a.Symbol]; dup {
			continue
		}
		l.index[a.Symbol] = len(l.assets)
		l.assets = append(l.assets, a)
	}
	return l
}

// Default returns the allow-list of every asset the collector ingests.
func Default() *AllowList {
	return NewAllowList(defaultAssets)
}

// Validate uppercases raw and accepts it only if it is an exact member.
func (l *AllowList) Validate(raw string) (Symbol, error) {
	s := Symbol(strings.ToUpper(raw))
	if _, ok := l.index[s]; !ok {
		return "", &InvalidSymbolError{Input: raw}
	}
	return s, nil
}

// Contains reports whether raw is allow-listed, ignoring case.
func (l *AllowList) Contains(raw string) bool {
	_, err := l.Validate(raw)
	return err == nil
}

// Symbols returns the canonical tickers in registry order.
func (l *AllowList) Symbols() []Symbol {
	out := make([]Symbol, len(l.assets))
	for i, a := range l.assets {
		out[i] = a.Symbol
	}
	return out
}

// Assets returns a copy of the registry entries in registry order.
func (l *AllowList) Assets() []Asset {
	out := make([]Asset, len(l.assets))
	copy(out, l.assets)
	return out
}

// Len returns the number of allow-listed symbols.
func (l *AllowList) Len() int { return len(l.assets) }
