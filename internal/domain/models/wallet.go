package models

// TokenTransfer is one SPL transfer inside an indexed transaction.
type TokenTransfer struct {
	Mint            string  `json:"mint"`
	FromUserAccount string  `json:"fromUserAccount"`
	ToUserAccount   string  `json:"toUserAccount"`
	TokenAmount     float64 `json:"tokenAmount"`
}

// WalletTx is an enhanced transaction as returned by the indexer.
type WalletTx struct {
	Signature      string          `json:"signature"`
	Timestamp      int64           `json:"timestamp"` // unix seconds
	TokenTransfers []TokenTransfer `json:"tokenTransfers"`
}
