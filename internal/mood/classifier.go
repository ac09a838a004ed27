package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"yumexpress-be/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultModel        = "SamLowe/roberta-base-go_emotions"
	huggingFaceBaseURL  = "https://router.huggingface.co/hf-inference/models/"
	classifierTimeout   = 10 * time.Second
	maxClassifierBodyKB = 256
)

// Prediction is the top label returned by a classifier.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

var ErrNoPrediction = errors.New("classifier returned no predictions")

type huggingFaceClassifier struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewHuggingFaceClassifier(apiKey, model string) Classifier {
	if model == "" {
		model = DefaultModel
	}
	return &huggingFaceClassifier{
		apiKey:   apiKey,
		endpoint: huggingFaceBaseURL + model,
		httpClient: &http.Client{
			Timeout: classifierTimeout,
		},
	}
}

func (h *huggingFaceClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return Prediction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return Prediction{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxClassifierBodyKB<<10))
	if err != nil {
		return Prediction{}, err
	}

	if resp.StatusCode >= 300 {
		return Prediction{}, fmt.Errorf("classifier responded %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return parsePredictions(raw)
}

// parsePredictions accepts both [[{label,score}...]] and [{label,score}...]
// and returns the highest scoring entry.
func parsePredictions(raw []byte) (Prediction, error) {
	var nested [][]Prediction
	var preds []Prediction

	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) > 0 {
			preds = nested[0]
		}
	} else if err := json.Unmarshal(raw, &preds); err != nil {
		return Prediction{}, fmt.Errorf("decode classifier response: %w", err)
	}

	if len(preds) == 0 {
		return Prediction{}, ErrNoPrediction
	}

	top := preds[0]
	for _, p := range preds[1:] {
		if p.Score > top.Score {
			top = p
		}
	}
	return top, nil
}

// ClassifierProvider holds the classifier built once at startup.
// Get returns false until Init has succeeded.
type ClassifierProvider struct {
	mu         sync.RWMutex
	classifier Classifier
	ready      bool
}

// Init builds the classifier on the first call only; later calls are no-ops.
func (p *ClassifierProvider) Init(build func() (Classifier, error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}

	c, err := build()
	if err != nil {
		logger.L().Warn("mood classifier unavailable, keyword matching only", zap.Error(err))
		return err
	}
	if c == nil {
		return nil
	}

	p.classifier = c
	p.ready = true
	return nil
}

func (p *ClassifierProvider) Get() (Classifier, bool) {
	if p == nil {
		return nil, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.classifier, p.ready
}
