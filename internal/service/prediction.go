package service

import (
	"context"
	"time"

	"realty/internal/metrics"
	"realty/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PredictionService validates a form and prices it
type PredictionService struct {
	validator *FormValidator
	predictor Predictor
	metrics   *metrics.Metrics
}

// NewPredictionService creates a new prediction service
func NewPredictionService(validator *FormValidator, predictor Predictor, m *metrics.Metrics) *PredictionService {
	return &PredictionService{validator: validator, predictor: predictor, metrics: m}
}

// Predict returns either a result, a non-empty list of validation
// problems, or an error. Model failures are *InferenceError.
func (s *PredictionService) Predict(ctx context.Context, fields map[string]string) (*model.PredictionResult, []string, error) {
	startTime := time.Now()

	rec, problems, err := s.validator.Validate(fields)
	if err != nil {
		s.metrics.ObservePrediction(metrics.OutcomeFailed)
		return nil, nil, err
	}
	if len(problems) > 0 {
		s.metrics.ObservePrediction(metrics.OutcomeInvalid)
		log.Debug().Strs("problems", problems).Msg("Prediction form rejected")
		return nil, problems, nil
	}

	crore, err := s.predictor.Predict(ctx, rec)
	if err != nil {
		s.metrics.ObservePrediction(metrics.OutcomeFailed)
		log.Error().Err(err).Msg("Inference failed")
		return nil, nil, &InferenceError{Err: err}
	}

	price := FormatPrice(CroreToINR(crore))
	result := &model.PredictionResult{
		ID:      uuid.NewString(),
		Display: price.Main,
		Breakdown: model.PriceBreakdown{
			INR:   price.INR,
			Lakh:  price.Lakh,
			Crore: price.Crore,
		},
		Crore: crore,
	}

	s.metrics.ObservePrediction(metrics.OutcomeOK)
	log.Info().
		Str("id", result.ID).
		Float64("crore", crore).
		Dur("took", time.Since(startTime)).
		Msg("Prediction served")
	return result, nil, nil
}
