// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"github.com/pdiddy/strategy-dashboard/internal/markdown"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

// Section headers read from VISION.md. "Vision" also matches headers such as
// "## Vision Statement".
const (
	northStarHeader      = "North Star"
	visionHeader         = "Vision"
	missionHeader        = "Mission"
	strategicBetsHeader  = "Strategic Bets"
	nonGoalsHeader       = "Non-Goals"
	successMetricsHeader = "Success Metrics"
)

// ParseVision extracts the sections of a VISION.md document. Each field is
// filled independently; a missing or empty section leaves it nil.
func ParseVision(content string) types.Vision {
	section := func(header string) string {
		body, _ := markdown.Section(content, header)
		return body
	}

	return types.Vision{
		NorthStar:      types.StrPtr(markdown.FirstLine(section(northStarHeader))),
		Vision:         types.StrPtr(markdown.LeadingParagraph(section(visionHeader))),
		Mission:        nonEmpty(markdown.Bullets(section(missionHeader))),
		StrategicBets:  nonEmpty(markdown.NumberedOrBullets(section(strategicBetsHeader))),
		NonGoals:       nonEmpty(markdown.Bullets(section(nonGoalsHeader))),
		SuccessMetrics: nonEmpty(markdown.Bullets(section(successMetricsHeader))),
	}
}

// nonEmpty normalizes an empty list to nil so it serializes as absent.
func nonEmpty(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return items
}
