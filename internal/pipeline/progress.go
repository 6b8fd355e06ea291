package pipeline

import "autostream/internal/domain"

// StepStatus describes one wizard step for presentation code.
type StepStatus struct {
	Stage       domain.Stage `json:"stage"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      string       `json:"status"` // active, completed or pending
	Number      int          `json:"number"`
}

// Progress summarizes how far the pipeline has come.
type Progress struct {
	Percent      float64      `json:"percent"`
	CurrentStage domain.Stage `json:"current_stage"`
	Steps        []StepStatus `json:"steps"`
}

// Progress reports per-step status and an overall completion percentage. The
// Complete stage is not listed as a step; reaching it means 100 percent.
func (c *Coordinator) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalSteps := domain.StageCount - 1
	p := Progress{
		CurrentStage: c.store.stage,
		Percent:      float64(int(c.store.stage)) / float64(totalSteps) * 100,
		Steps:        make([]StepStatus, 0, totalSteps),
	}
	if p.Percent > 100 {
		p.Percent = 100
	}
	for i := 0; i < totalSteps; i++ {
		stage := domain.Stage(i)
		status := "pending"
		switch {
		case stage == c.store.stage:
			status = "active"
		case c.store.completed(stage):
			status = "completed"
		}
		p.Steps = append(p.Steps, StepStatus{
			Stage:       stage,
			Name:        stage.String(),
			Description: stage.Description(),
			Status:      status,
			Number:      i + 1,
		})
	}
	return p
}
