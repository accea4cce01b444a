// internal/server/types.go
package server

// Request bodies mirror the JSON the mobile client sends. Public keys are
// base58 strings; token amounts are raw integer units; SOL amounts are
// decimal strings converted server-side.

type createMarketRequest struct {
	Creator     string `json:"creator" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Symbol      string `json:"symbol" binding:"required"`
	MetadataURI string `json:"metadataUri"`
	QuoteMint   string `json:"quoteMint"`
	TotalSupply uint64 `json:"totalSupply" binding:"required"`

	TargetRaiseSOL string `json:"targetRaiseSol"`
	CurvePercent   uint64 `json:"curvePercent"`
	JustSendIt     bool   `json:"justSendIt"`
}

type swapRequest struct {
	Market    string `json:"market" binding:"required"`
	User      string `json:"user" binding:"required"`
	Action    string `json:"action" binding:"required"`
	TradeType string `json:"tradeType" binding:"required"`
	Amount    uint64 `json:"amount" binding:"required"`
	Threshold uint64 `json:"threshold"`
}

type stakeRequest struct {
	Market string `json:"market" binding:"required"`
	User   string `json:"user" binding:"required"`
}

type vestingRequest struct {
	Market        string `json:"market" binding:"required"`
	User          string `json:"user" binding:"required"`
	Amount        uint64 `json:"amount" binding:"required"`
	StartTime     int64  `json:"startTime"`
	Duration      int64  `json:"duration" binding:"required"`
	CliffDuration int64  `json:"cliffDuration"`
}

type releaseRequest struct {
	Market      string `json:"market" binding:"required"`
	User        string `json:"user" binding:"required"`
	VestingPlan string `json:"vestingPlan" binding:"required"`
}

type setCurveRequest struct {
	Market    string   `json:"market" binding:"required"`
	Authority string   `json:"authority" binding:"required"`
	Asks      []uint64 `json:"asks" binding:"required"`
	Bids      []uint64 `json:"bids"`
}

type freeMarketRequest struct {
	Market string `json:"market" binding:"required"`
}

// Responses. Every endpoint answers {success, ...}; failures carry a
// human-readable error string.

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type transactionResponse struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction"`
}

// dataTransactionResponse carries the transaction directly under "data";
// the stake, release, and set-curve endpoints answer in this shape.
type dataTransactionResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

type createMarketResponse struct {
	Success       bool   `json:"success"`
	Transaction   string `json:"transaction"`
	MarketAddress string `json:"marketAddress"`
	BaseTokenMint string `json:"baseTokenMint"`
}

type vestingData struct {
	Transaction           string `json:"transaction"`
	EphemeralVestingPubkey string `json:"ephemeralVestingPubkey"`
}

type vestingResponse struct {
	Success bool        `json:"success"`
	Data    vestingData `json:"data"`
}

type freeMarketData struct {
	Signature string   `json:"signature"`
	Logs      []string `json:"logs,omitempty"`
}

type freeMarketResponse struct {
	Success bool           `json:"success"`
	Data    freeMarketData `json:"data"`
}

type tokenInfo struct {
	BaseMint  string `json:"baseMint"`
	QuoteMint string `json:"quoteMint"`
	Locked    bool   `json:"locked"`
}

type graduationResponse struct {
	Success              bool      `json:"success"`
	BaseTokenBalance     uint64    `json:"baseTokenBalance"`
	QuoteTokenBalance    uint64    `json:"quoteTokenBalance"`
	TokenInfo            tokenInfo `json:"tokenInfo"`
	Graduation           bool      `json:"graduation"`
	GraduationPercentage float64   `json:"graduation_percentage"`
}
