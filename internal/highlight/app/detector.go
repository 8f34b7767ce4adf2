package app

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"football_highlights_service/internal/highlight/domain"
	errprocess "football_highlights_service/pkg/err"

	"github.com/google/uuid"
)

// Detector 精華偵測器, 目前只有 MockDetector, 之後可替換為真正的模型
type Detector interface {
	Detect(ctx context.Context, duration float64) ([]domain.Highlight, error)
	Model() string
}

// 時間皆以 0.1 秒為單位計算
const (
	minClipTenths     = 50
	maxClipTenths     = 150
	minTargetCount    = 3
	maxTargetCount    = 15
	attemptsPerTarget = 10
	minConfidence     = 0.70
	maxConfidence     = 0.99
)

type labelWeight struct {
	label  domain.Label
	weight float64
}

var labelWeights = []labelWeight{
	{domain.LabelGoal, 15},
	{domain.LabelFoul, 30},
	{domain.LabelPenalty, 10},
	{domain.LabelCrowd, 25},
}

// MockDetector 隨機產生不重疊的精華區間
type MockDetector struct {
	mu    sync.Mutex
	rng   *rand.Rand
	model string
}

// NewMockDetector 建立 MockDetector, seed 為 0 時以目前時間為 seed
func NewMockDetector(model string, seed uint64) *MockDetector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &MockDetector{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		model: model,
	}
}

// Model model name reported in detect metadata
func (d *MockDetector) Model() string {
	return d.model
}

// Detect 依影片長度產生精華區間, 依 start 排序
func (d *MockDetector) Detect(ctx context.Context, duration float64) ([]domain.Highlight, error) {
	if !domain.ValidDuration(duration) {
		return nil, errprocess.Set(errprocess.InvalidInput, "Valid video duration is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	target := d.targetCount(duration)
	// 頭尾各保留 5%
	lo := int(math.Ceil(duration * 0.5))
	hi := int(math.Floor(duration * 9.5))

	type span struct{ start, end int }
	var (
		placed     = make([]span, 0, target)
		highlights = make([]domain.Highlight, 0, target)
	)

	for attempt := 0; len(placed) < target && attempt < target*attemptsPerTarget; attempt++ {
		length := minClipTenths + d.rng.IntN(maxClipTenths-minClipTenths+1)
		maxStart := hi - length
		if maxStart < lo {
			continue
		}
		cand := span{start: lo + d.rng.IntN(maxStart-lo+1)}
		cand.end = cand.start + length

		overlap := false
		for _, p := range placed {
			if cand.start < p.end && p.start < cand.end {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}

		placed = append(placed, cand)
		highlights = append(highlights, domain.Highlight{
			ID:         d.newID(),
			Start:      float64(cand.start) / 10,
			End:        float64(cand.end) / 10,
			Label:      d.pickLabel(),
			Confidence: math.Round((minConfidence+d.rng.Float64()*(maxConfidence-minConfidence))*100) / 100,
			Enabled:    true,
		})
	}

	sort.Slice(highlights, func(i, j int) bool {
		return highlights[i].Start < highlights[j].Start
	})
	return highlights, nil
}

// targetCount 在 [max(3, d/60), min(15, d/30)] 之間取值, 下限超過上限時取上限
func (d *MockDetector) targetCount(duration float64) int {
	lower := int(math.Max(minTargetCount, math.Floor(duration/60)))
	upper := int(math.Min(maxTargetCount, math.Floor(duration/30)))
	if lower >= upper {
		return upper
	}
	return lower + d.rng.IntN(upper-lower+1)
}

func (d *MockDetector) pickLabel() domain.Label {
	var total float64
	for _, w := range labelWeights {
		total += w.weight
	}

	r := d.rng.Float64() * total
	for _, w := range labelWeights {
		if r < w.weight {
			return w.label
		}
		r -= w.weight
	}
	return labelWeights[len(labelWeights)-1].label
}

// newID 由同一個亂數來源產生 uuid, 相同 seed 產生相同結果
func (d *MockDetector) newID() string {
	id, err := uuid.NewRandomFromReader(rngReader{d.rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type rngReader struct {
	r *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.r.Uint32())
	}
	return len(p), nil
}
