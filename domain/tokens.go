package domain

// Token represents the token's domain model
type Token struct {
	// ChainDenom is the denom used by the bank and the pools.
	ChainDenom string `json:"denom" yaml:"denom"`
	// HumanDenom is the human readable denom.
	HumanDenom string `json:"symbol" yaml:"symbol"`
	// Precision is the precision of the token.
	Precision int `json:"decimals" yaml:"decimals"`
}
