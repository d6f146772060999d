package service

import (
	"context"
	"fmt"

	"pantry/background-worker-service/internal/app/background-worker/entity"
	"pantry/background-worker-service/internal/app/background-worker/repository"
	"pantry/pkg/logger"
	"pantry/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// ReconcileService recomputes every recipe's total_cost from its items.
// Pricing-service keeps recipes current on item mutations; this pass repairs
// drift left by crashed requests or direct data fixes.
type ReconcileService struct {
	recipeRepo repository.RecipeRepository
}

func NewReconcileService(recipeRepo repository.RecipeRepository) *ReconcileService {
	return &ReconcileService{recipeRepo: recipeRepo}
}

func (s *ReconcileService) ReconcileAll(ctx context.Context) error {
	timer := prometheus.NewTimer(metrics.WorkerReconcileDuration)
	defer timer.ObserveDuration()

	ids, err := s.recipeRepo.ListIDs(ctx)
	if err != nil {
		metrics.WorkerReconcileRuns.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	var failed int
	for _, id := range ids {
		total, err := s.recipeRepo.RecalcTotalCost(ctx, id, totalCost)
		if err != nil {
			// One broken recipe must not stop the pass
			failed++
			logger.Error().Err(err).Str("recipe_id", id.String()).Msg("failed to reconcile recipe")
			continue
		}

		metrics.RecipesRecalculated.WithLabelValues("reconcile").Inc()
		logger.Debug().
			Str("recipe_id", id.String()).
			Float64("total_cost", total).
			Msg("Recipe reconciled")
	}

	if failed > 0 {
		metrics.WorkerReconcileRuns.WithLabelValues("failed").Inc()
	} else {
		metrics.WorkerReconcileRuns.WithLabelValues("success").Inc()
	}

	logger.Info().
		Int("recipes", len(ids)).
		Int("failed", failed).
		Msg("Recipe cost reconciliation finished")

	return nil
}

func totalCost(items []entity.RecipeItem) float64 {
	sum := 0.0
	for i := range items {
		sum += items[i].Cost()
	}
	return sum
}
