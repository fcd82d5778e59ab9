package factors

import (
	"fmt"

	"github.com/yourusername/matchedge/internal/models"
)

func differential(a, b int) float64 {
	if a+b == 0 {
		return 0
	}
	return float64(a-b) / float64(a+b)
}

// HeadToHead scores the meeting record, blending in surface meetings when there are enough
func HeadToHead(in *Inputs) models.FactorScore {
	cfg := in.Profile.HeadToHead
	h := in.HeadToHead
	if h.Meetings() < cfg.MinMeetings {
		return models.NoData(models.FactorHeadToHead, 0, fmt.Sprintf("%d meetings", h.Meetings()))
	}

	value := differential(h.WinsA, h.WinsB)
	detail := fmt.Sprintf("%d-%d overall", h.WinsA, h.WinsB)
	if h.SurfaceMeetings() >= cfg.MinSurfaceMeetings {
		value = cfg.OverallWeight*value + cfg.SurfaceWeight*differential(h.SurfaceWinsA, h.SurfaceWinsB)
		detail += fmt.Sprintf(", %d-%d on %s", h.SurfaceWinsA, h.SurfaceWinsB, in.Match.Surface)
	}

	return models.FactorScore{Value: value, HasData: true, Detail: detail}
}
