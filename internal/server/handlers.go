// internal/server/handlers.go
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/solport/launchpad/internal/launchpad"
)

var lamportsPerSOL = decimal.NewFromInt(1_000_000_000)

// respondError writes the uniform failure shape. Validation and domain
// errors are the client's fault (400); probe and assembly failures are
// ours (500).
func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, errorResponse{Success: false, Error: err.Error()})
}

// statusFor classifies a service error. Probe errors wrap RPC failures and
// map to 500; everything else came from the request.
func statusFor(err error) int {
	var probeErr *launchpad.ProbeError
	if errors.As(err, &probeErr) {
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(err, launchpad.ErrMarketNotFound),
		errors.Is(err, launchpad.ErrStakingExists),
		errors.Is(err, launchpad.ErrZeroAmount),
		errors.Is(err, launchpad.ErrMissingVestingPlan),
		errors.Is(err, launchpad.ErrInvalidCurveLength),
		errors.Is(err, launchpad.ErrCurvePercentBounds),
		errors.Is(err, launchpad.ErrMinRaiseNotMet),
		errors.Is(err, launchpad.ErrUnsupportedAction),
		errors.Is(err, launchpad.ErrUnsupportedSwapMode):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parsePubkey(field, value string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s public key: %w", field, err)
	}
	return key, nil
}

// solToLamports converts a decimal SOL string to lamports, flooring.
func solToLamports(sol string) (uint64, error) {
	d, err := decimal.NewFromString(sol)
	if err != nil {
		return 0, fmt.Errorf("invalid SOL amount %q", sol)
	}
	if d.Sign() < 0 {
		return 0, fmt.Errorf("SOL amount must not be negative")
	}
	return uint64(d.Mul(lamportsPerSOL).Floor().IntPart()), nil
}

func (s *Server) handleCreateMarket(c *gin.Context) {
	var req createMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	creator, err := parsePubkey("creator", req.Creator)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	var quoteMint solana.PublicKey
	if req.QuoteMint != "" {
		quoteMint, err = parsePubkey("quoteMint", req.QuoteMint)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}

	svcReq := launchpad.CreateMarketRequest{
		CreateMarketParams: launchpad.CreateMarketParams{
			Creator:     creator,
			Name:        req.Name,
			Symbol:      req.Symbol,
			MetadataURI: req.MetadataURI,
			QuoteMint:   quoteMint,
			TotalSupply: req.TotalSupply,
		},
		JustSendIt: req.JustSendIt,
	}
	if req.TargetRaiseSOL != "" {
		raise, err := solToLamports(req.TargetRaiseSOL)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		svcReq.TargetRaiseLamports = raise
		svcReq.CurvePercent = req.CurvePercent
		svcReq.WithCurve = true
	}

	result, err := s.service.CreateMarket(c.Request.Context(), svcReq)
	if err != nil {
		s.logger.Warn("create market failed", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, createMarketResponse{
		Success:       true,
		Transaction:   result.Transaction,
		MarketAddress: result.MarketAddress.String(),
		BaseTokenMint: result.BaseTokenMint.String(),
	})
}

func (s *Server) handleSwap(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	market, err := parsePubkey("market", req.Market)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := parsePubkey("user", req.User)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	encoded, err := s.service.Swap(c.Request.Context(), launchpad.SwapParams{
		Market:    market,
		User:      user,
		Action:    req.Action,
		TradeType: req.TradeType,
		Amount:    req.Amount,
		Threshold: req.Threshold,
	})
	if err != nil {
		s.logger.Warn("swap composition failed", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, transactionResponse{Success: true, Transaction: encoded})
}

func (s *Server) handleStake(c *gin.Context) {
	var req stakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	market, err := parsePubkey("market", req.Market)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := parsePubkey("user", req.User)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	encoded, err := s.service.Stake(c.Request.Context(), market, user)
	if err != nil {
		s.logger.Warn("stake composition failed", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dataTransactionResponse{Success: true, Data: encoded})
}

func (s *Server) handleVesting(c *gin.Context) {
	var req vestingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	market, err := parsePubkey("market", req.Market)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := parsePubkey("user", req.User)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := s.service.Vest(c.Request.Context(), launchpad.VestParams{
		Market:        market,
		User:          user,
		Amount:        req.Amount,
		StartTime:     req.StartTime,
		Duration:      req.Duration,
		CliffDuration: req.CliffDuration,
	})
	if err != nil {
		s.logger.Warn("vesting composition failed", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, vestingResponse{
		Success: true,
		Data: vestingData{
			Transaction:            result.Transaction,
			EphemeralVestingPubkey: result.EphemeralVestingPlan.String(),
		},
	})
}

func (s *Server) handleRelease(c *gin.Context) {
	var req releaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	market, err := parsePubkey("market", req.Market)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := parsePubkey("user", req.User)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	plan, err := parsePubkey("vestingPlan", req.VestingPlan)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	encoded, err := s.service.Release(c.Request.Context(), launchpad.ReleaseParams{
		Market:      market,
		User:        user,
		VestingPlan: plan,
	})
	if err != nil {
		s.logger.Warn("release composition failed", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dataTransactionResponse{Success: true, Data: encoded})
}

func (s *Server) handleSetCurve(c *gin.Context) {
	var req setCurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	market, err := parsePubkey("market", req.Market)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	authority, err := parsePubkey("authority", req.Authority)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	encoded, err := s.service.SetCurve(c.Request.Context(), launchpad.SetCurveParams{
		Market:    market,
		Authority: authority,
		Asks:      req.Asks,
		Bids:      req.Bids,
	})
	if err != nil {
		s.logger.Warn("set-curve composition failed", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dataTransactionResponse{Success: true, Data: encoded})
}

func (s *Server) handleFreeMarket(c *gin.Context) {
	var req freeMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	market, err := parsePubkey("market", req.Market)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := s.service.FreeMarket(c.Request.Context(), market)
	if err != nil {
		s.logger.Error("free market failed", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, freeMarketResponse{
		Success: true,
		Data: freeMarketData{
			Signature: result.Signature,
			Logs:      result.Logs,
		},
	})
}

func (s *Server) handleGraduation(c *gin.Context) {
	marketParam := c.Query("market")
	if marketParam == "" {
		respondError(c, http.StatusBadRequest, errors.New("market query parameter is required"))
		return
	}
	market, err := parsePubkey("market", marketParam)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	status, err := s.service.Graduation(c.Request.Context(), market)
	if err != nil {
		s.logger.Warn("graduation probe failed", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, graduationResponse{
		Success:           true,
		BaseTokenBalance:  status.BaseTokenBalance,
		QuoteTokenBalance: status.QuoteTokenBalance,
		TokenInfo: tokenInfo{
			BaseMint:  status.BaseMint.String(),
			QuoteMint: status.QuoteMint.String(),
			Locked:    status.Locked,
		},
		Graduation:           status.Graduated,
		GraduationPercentage: status.GraduationPercentage,
	})
}
