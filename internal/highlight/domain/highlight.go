package domain

// Label 精華片段分類
type Label string

const (
	// LabelGoal goal
	LabelGoal Label = "goal"
	// LabelFoul foul
	LabelFoul Label = "foul"
	// LabelPenalty penalty
	LabelPenalty Label = "penalty"
	// LabelCrowd crowd reaction
	LabelCrowd Label = "crowd"
)

// Labels 所有合法分類
var Labels = []Label{LabelGoal, LabelFoul, LabelPenalty, LabelCrowd}

// Valid check label is one of Labels
func (l Label) Valid() bool {
	for _, v := range Labels {
		if v == l {
			return true
		}
	}
	return false
}

// Highlight 偵測出的精華區間, 秒為單位
type Highlight struct {
	ID         string  `json:"id"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Enabled    bool    `json:"enabled"`
}

// Duration end - start
func (h Highlight) Duration() float64 {
	return h.End - h.Start
}

// Overlaps 半開區間 [start, end) 是否重疊, 相接不算重疊
func (h Highlight) Overlaps(o Highlight) bool {
	return h.Start < o.End && o.Start < h.End
}

// MaxVideoDuration 可偵測的最長影片 (秒), 約 115 天
const MaxVideoDuration = 1e7

// ValidDuration 有限, 大於 0 且不超過 MaxVideoDuration
func ValidDuration(d float64) bool {
	return d > 0 && d <= MaxVideoDuration
}

// DetectReq usecase detect request
type DetectReq struct {
	VideoPath string  `json:"videoPath"`
	Duration  float64 `json:"duration"`
}

// DetectMetadata detect response metadata
type DetectMetadata struct {
	VideoPath   string  `json:"videoPath"`
	Duration    float64 `json:"duration"`
	ProcessedAt string  `json:"processedAt"`
	Model       string  `json:"model"`
}

// DetectRes usecase detect response
type DetectRes struct {
	Highlights []Highlight    `json:"highlights"`
	Metadata   DetectMetadata `json:"metadata"`
}
