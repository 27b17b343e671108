package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/WarenOdhiambo1/lead-magnet/internal/config"
	"github.com/WarenOdhiambo1/lead-magnet/internal/logger"
	"github.com/WarenOdhiambo1/lead-magnet/internal/metrics"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
	"github.com/WarenOdhiambo1/lead-magnet/internal/repository"
)

// Transactor runs fn in a transaction bound to the context it is given
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// OpportunityScanner compares stored predictions with bookmaker prices
type OpportunityScanner struct {
	tx              Transactor
	predictionRepo  repository.PredictionRepository
	oddsRepo        repository.OddsRepository
	opportunityRepo repository.OpportunityRepository
	engine          config.EngineConfig
	logger          *logrus.Logger
	engineLog       *logger.EngineLogger
	auditLog        *logger.AuditLogger
	now             func() time.Time
}

// NewOpportunityScanner creates a new opportunity scanner. The opportunities of
// one match are stored in a single transaction of tx; a nil tx stores them
// without one.
func NewOpportunityScanner(
	tx Transactor,
	predictionRepo repository.PredictionRepository,
	oddsRepo repository.OddsRepository,
	opportunityRepo repository.OpportunityRepository,
	engine config.EngineConfig,
	log *logrus.Logger,
) *OpportunityScanner {
	return &OpportunityScanner{
		tx:              tx,
		predictionRepo:  predictionRepo,
		oddsRepo:        oddsRepo,
		opportunityRepo: opportunityRepo,
		engine:          engine,
		logger:          log,
		engineLog:       logger.NewEngineLogger(log),
		auditLog:        logger.NewAuditLogger(log),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// ScanReport summarises one scan run
type ScanReport struct {
	RunID          uuid.UUID     `json:"run_id"`
	MatchesScanned int           `json:"matches_scanned"`
	ValueBets      int           `json:"value_bets"`
	Arbitrages     int           `json:"arbitrages"`
	Stored         int           `json:"stored"`
	Failed         int           `json:"failed"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
}

// Scan evaluates every stored prediction that has h2h prices and records the
// value bets and arbitrages found
func (s *OpportunityScanner) Scan(ctx context.Context) (*ScanReport, error) {
	report := &ScanReport{RunID: uuid.New(), StartedAt: s.now()}
	log := s.logger.WithFields(logrus.Fields{"job": JobScanOpportunities, "run_id": report.RunID})

	predictions, err := s.predictionRepo.GetWithOdds(ctx, s.engine.BatchSize)
	if err != nil {
		metrics.RecordRun(JobScanOpportunities, false, time.Since(report.StartedAt).Seconds())
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}
	log.WithField("matches", len(predictions)).Info("Scanning for opportunities")

	for _, p := range predictions {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(report.StartedAt)
			return report, err
		}

		report.MatchesScanned++
		prices, err := s.oddsRepo.GetBestPrices(ctx, p.MatchID, models.MarketTypeH2H)
		if err != nil {
			report.Failed++
			log.WithError(err).WithField("match_id", p.MatchID).Warn("Failed to load best prices")
			continue
		}

		opps := s.Evaluate(p, prices)
		for _, opp := range opps {
			switch opp.Type {
			case models.OpportunityValueBet:
				report.ValueBets++
				metrics.RecordValueBet(opp.Selection, opp.EdgePercent)
				s.engineLog.LogValueBet(opp.MatchID, opp.Selection, opp.Bookmaker, opp.ModelProb, opp.BestOdds, opp.EdgePercent)
			case models.OpportunityArbitrage:
				report.Arbitrages++
				metrics.RecordArbitrage()
			}
		}
		if len(opps) == 0 {
			continue
		}

		inserted, err := s.store(ctx, opps)
		if err != nil {
			report.Failed++
			log.WithError(err).WithField("match_id", p.MatchID).Warn("Failed to store opportunities")
			continue
		}
		report.Stored += len(inserted)
		for _, opp := range inserted {
			s.auditLog.LogOpportunityRecorded(opp.ID.String(), opp.MatchID, string(opp.Type), opp.Selection, opp.BestOdds, opp.EdgePercent, opp.Timestamp)
		}
	}

	report.Duration = time.Since(report.StartedAt)
	metrics.RecordRun(JobScanOpportunities, true, report.Duration.Seconds())
	s.engineLog.LogRunSummary(JobScanOpportunities, report.RunID.String(),
		report.MatchesScanned, report.ValueBets+report.Arbitrages, report.Failed, float64(report.Duration.Microseconds())/1000)

	return report, nil
}

// store inserts the opportunities of one match all or nothing and returns
// the ones that were new
func (s *OpportunityScanner) store(ctx context.Context, opps []*models.Opportunity) ([]*models.Opportunity, error) {
	var inserted []*models.Opportunity
	insertAll := func(ctx context.Context) error {
		inserted = inserted[:0]
		for _, opp := range opps {
			if err := validate.Struct(opp); err != nil {
				return fmt.Errorf("invalid opportunity: %w", err)
			}
			ok, err := s.opportunityRepo.Insert(ctx, opp)
			if err != nil {
				return err
			}
			if ok {
				inserted = append(inserted, opp)
			}
		}
		return nil
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithTransaction(ctx, insertAll)
	} else {
		err = insertAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// Evaluate returns the opportunities a prediction offers against the best
// prices of its match. Prices for unknown selections or with invalid odds are
// ignored. Arbitrage is only checked when all three selections are priced.
func (s *OpportunityScanner) Evaluate(p *models.PredictionWithFixture, prices []*models.BestPrice) []*models.Opportunity {
	var out []*models.Opportunity
	best := make(map[models.Selection]*models.BestPrice, 3)

	for _, bp := range prices {
		sel, ok := models.ResolveSelection(bp.Selection, p.HomeTeam, p.AwayTeam)
		if !ok {
			continue
		}
		best[sel] = bp

		prob, _ := p.ProbabilityFor(sel)
		va, err := quant.ValueBet(prob, bp.Odds, s.engine.MinValueMargin)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"match_id":  p.MatchID,
				"selection": bp.Selection,
			}).Debug("Skipping price")
			continue
		}
		if !va.HasValue {
			continue
		}

		out = append(out, &models.Opportunity{
			ID:            uuid.New(),
			MatchID:       p.MatchID,
			Type:          models.OpportunityValueBet,
			Selection:     string(sel),
			Bookmaker:     bp.Bookmaker,
			ModelProb:     prob,
			BestOdds:      bp.Odds,
			FairOdds:      va.FairOdds,
			EdgePercent:   va.EdgePercent,
			ExpectedValue: va.ExpectedValue,
			Status:        models.OpportunityStatusOpen,
			Timestamp:     s.now(),
		})
	}

	home, okHome := best[models.SelectionHome]
	draw, okDraw := best[models.SelectionDraw]
	away, okAway := best[models.SelectionAway]
	if !okHome || !okDraw || !okAway {
		return out
	}

	arb, err := quant.Arbitrage(home.Odds, draw.Odds, away.Odds)
	if err != nil || !arb.IsArbitrage {
		return out
	}

	s.engineLog.LogArbitrage(p.MatchID, arb.Odds, arb.ImpliedSum, arb.ProfitMarginPercent)
	// BestOdds holds the combined price: the payout per unit staked across all legs.
	out = append(out, &models.Opportunity{
		ID:                  uuid.New(),
		MatchID:             p.MatchID,
		Type:                models.OpportunityArbitrage,
		Selection:           models.ArbitrageSelection,
		Bookmaker:           strings.Join([]string{home.Bookmaker, draw.Bookmaker, away.Bookmaker}, "/"),
		BestOdds:            1 / arb.ImpliedSum,
		EdgePercent:         arb.ProfitMarginPercent,
		ExpectedValue:       1/arb.ImpliedSum - 1,
		ProfitMarginPercent: arb.ProfitMarginPercent,
		Status:              models.OpportunityStatusOpen,
		Timestamp:           s.now(),
	})
	return out
}
