package devactivity

import (
	"context"
	"errors"
	"time"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/repository"
	"MemeIQ/internal/domain/service"
	"MemeIQ/internal/service/breaker"
	"MemeIQ/internal/services/helius"
	"MemeIQ/internal/solana"
	xhttp "MemeIQ/pkg/http"
	applogger "MemeIQ/pkg/logger"
)

const (
	ErrNotConfigured   = "HELIUS_API_KEY not configured"
	ErrCreatorNotFound = "Creator address not found"
	ErrProviderFailed  = "Helius API rate limited or failed"
	ErrUnavailable     = "Dev tracking unavailable"

	suspiciousSells  = 3
	suspiciousDevPct = 10.0
)

type Config struct {
	TxLimit  int
	Lookback time.Duration
}

// Enricher counts creator-wallet transfers of a mint over a lookback window.
type Enricher struct {
	wallets repository.WalletActivity
	cfg     Config
	now     func() time.Time
	logger  *applogger.Logger
}

var _ service.DevActivityEnricher = (*Enricher)(nil)

func New(wallets repository.WalletActivity, cfg Config, l *applogger.Logger) *Enricher {
	if cfg.TxLimit <= 0 {
		cfg.TxLimit = 50
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 7 * 24 * time.Hour
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &Enricher{wallets: wallets, cfg: cfg, now: time.Now, logger: l}
}

func (e *Enricher) WithClock(now func() time.Time) *Enricher {
	e.now = now
	return e
}

// Enrich never fails; the reason for an unavailable result is in Error.
func (e *Enricher) Enrich(ctx context.Context, mint, creator string, devPct float64) models.DevActivity {
	if creator == "" {
		return unavailable(ErrCreatorNotFound)
	}
	if e.wallets == nil || !e.wallets.Configured() {
		return unavailable(ErrNotConfigured)
	}
	// Off-curve addresses are program-derived and never sell on their own.
	if !solana.IsWallet(creator) {
		return unavailable(ErrCreatorNotFound)
	}

	txs, err := e.wallets.Transactions(ctx, creator, e.cfg.TxLimit)
	if err != nil {
		e.logger.Warn("dev activity lookup failed",
			applogger.String("provider", helius.Provider),
			applogger.String("creator", creator),
			applogger.Error(err),
		)
		return unavailable(reason(err))
	}
	return Sells(txs, mint, creator, devPct, e.now().Add(-e.cfg.Lookback))
}

// Sells summarizes transfers of mint that leave creator at or after since.
func Sells(txs []models.WalletTx, mint, creator string, devPct float64, since time.Time) models.DevActivity {
	cutoff := since.UnixMilli()
	out := models.DevActivity{Available: true}
	for _, tx := range txs {
		ms := tx.Timestamp * 1000
		if ms < cutoff {
			continue
		}
		for _, tr := range tx.TokenTransfers {
			if tr.Mint != mint || tr.FromUserAccount != creator || tr.ToUserAccount == creator {
				continue
			}
			out.RecentSells++
			out.TotalSellVolume += tr.TokenAmount
			if out.LastSellDate == nil || ms > *out.LastSellDate {
				last := ms
				out.LastSellDate = &last
			}
		}
	}
	out.SuspiciousActivity = out.RecentSells >= suspiciousSells || devPct > suspiciousDevPct
	return out
}

func reason(err error) string {
	var se *xhttp.StatusError
	if errors.As(err, &se) || errors.Is(err, breaker.ErrOpen) {
		return ErrProviderFailed
	}
	return ErrUnavailable
}

func unavailable(msg string) models.DevActivity {
	return models.DevActivity{Error: &msg}
}
