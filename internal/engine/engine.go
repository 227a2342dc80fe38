package engine

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/raimundomartins/rendimentos/internal/jsonpatch"
	"github.com/raimundomartins/rendimentos/internal/model"
	"github.com/raimundomartins/rendimentos/internal/mutations"
	"github.com/raimundomartins/rendimentos/internal/telemetry"
)

type Engine struct {
	registry *mutations.Registry
	logger   *zap.Logger
	metrics  *telemetry.Metrics
}

func New(registry *mutations.Registry, logger *zap.Logger, metrics *telemetry.Metrics) *Engine {
	return &Engine{registry: registry, logger: logger.Named("engine"), metrics: metrics}
}

// Process runs the mutations in order. The first CRITICAL message stops the
// run; the end situation is the state after the last mutation that succeeded.
func (e *Engine) Process(ctx context.Context, req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	state := &model.Situation{}

	var allMessages []model.CalculationMessage
	var processedMutations []model.ProcessedMutation
	outcome := model.OutcomeSuccess
	hasCritical := false

	// Track last successfully applied mutation for end_situation
	lastMutationID := req.CalculationInstructions.Mutations[0].MutationID
	lastMutationIndex := 0
	lastActualAt := req.CalculationInstructions.Mutations[0].ActualAt

	record := func(msgs []model.CalculationMessage, indexes []int) []int {
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			indexes = append(indexes, m.ID)
			e.metrics.Messages.WithLabelValues(m.Level, m.Code).Inc()
			if m.Critical() {
				hasCritical = true
			}
		}
		return indexes
	}

	raw, before, err := jsonpatch.Snapshot(state)
	if err != nil {
		panic(fmt.Sprintf("engine: situation is not serializable: %v", err))
	}

	for i, mut := range req.CalculationInstructions.Mutations {
		handler, ok := e.registry.Get(mut.MutationDefinitionName)
		if !ok {
			indexes := record([]model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    "UNKNOWN_MUTATION",
				Message: fmt.Sprintf("Unknown mutation: %s", mut.MutationDefinitionName),
			}}, nil)
			processedMutations = append(processedMutations, model.ProcessedMutation{
				Mutation:                  mut,
				CalculationMessageIndexes: indexes,
			})
			e.metrics.Mutations.WithLabelValues("unknown", "rejected").Inc()
			break
		}

		// Validate
		msgIndexes := record(handler.Validate(ctx, state, &mut), nil)
		if hasCritical {
			processedMutations = append(processedMutations, model.ProcessedMutation{
				Mutation:                  mut,
				CalculationMessageIndexes: msgIndexes,
			})
			e.metrics.Mutations.WithLabelValues(mut.MutationDefinitionName, "rejected").Inc()
			break
		}

		// Apply
		msgIndexes = record(handler.Apply(ctx, state, &mut), msgIndexes)
		if hasCritical {
			// Apply may have left partial changes behind.
			state = restore(raw)
			processedMutations = append(processedMutations, model.ProcessedMutation{
				Mutation:                  mut,
				CalculationMessageIndexes: msgIndexes,
			})
			e.metrics.Mutations.WithLabelValues(mut.MutationDefinitionName, "failed").Inc()
			break
		}

		nextRaw, after, err := jsonpatch.Snapshot(state)
		if err != nil {
			panic(fmt.Sprintf("engine: situation is not serializable: %v", err))
		}
		fwd, bwd, err := jsonpatch.Between(before, after)
		if err != nil {
			panic(fmt.Sprintf("engine: patch is not serializable: %v", err))
		}
		raw, before = nextRaw, after

		processedMutations = append(processedMutations, model.ProcessedMutation{
			Mutation:                  mut,
			ForwardPatchToSituation:   fwd,
			BackwardPatchToSituation:  bwd,
			CalculationMessageIndexes: msgIndexes,
		})
		e.metrics.Mutations.WithLabelValues(mut.MutationDefinitionName, "applied").Inc()

		lastMutationID = mut.MutationID
		lastMutationIndex = i
		lastActualAt = mut.ActualAt
	}

	if hasCritical {
		outcome = model.OutcomeFailure
	}
	if p := state.SalaryPackage; p != nil && p.Payroll != nil {
		e.metrics.CompanyCost.Observe(p.Payroll.CompanyCost.InexactFloat64())
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	e.metrics.Calculations.WithLabelValues(req.TenantID, outcome).Inc()
	e.metrics.CalculationDuration.Observe(elapsed.Seconds())
	e.logger.Debug("calculation processed",
		zap.String("tenant_id", req.TenantID),
		zap.String("outcome", outcome),
		zap.Int("mutations", len(processedMutations)),
		zap.Int("messages", len(allMessages)),
		zap.Duration("elapsed", elapsed),
	)

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			TenantID:               req.TenantID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:  allMessages,
			Mutations: processedMutations,
			EndSituation: model.SituationEnvelope{
				MutationID:    lastMutationID,
				MutationIndex: lastMutationIndex,
				ActualAt:      lastActualAt,
				Situation:     *state,
			},
			InitialSituation: model.InitialSituation{
				ActualAt:  req.CalculationInstructions.Mutations[0].ActualAt,
				Situation: model.Situation{},
			},
		},
	}
}

func restore(raw []byte) *model.Situation {
	var s model.Situation
	if err := json.Unmarshal(raw, &s); err != nil {
		panic(fmt.Sprintf("engine: situation snapshot is corrupt: %v", err))
	}
	return &s
}
