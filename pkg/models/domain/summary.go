package domain

import "fmt"

type BoothCount struct {
	Booth string
	Count int
}

// TimeBucket is one bar of the time chart. Dates counts the distinct
// inspection dates that contributed to the bucket.
type TimeBucket struct {
	Label string
	Count int
	Dates int
}

type TimeMode string

const (
	TimeModeHourly TimeMode = "hourly"
	TimeModeDaily  TimeMode = "daily"
	TimeModeWeekly TimeMode = "weekly"
)

func ParseTimeMode(s string) (TimeMode, error) {
	switch m := TimeMode(s); m {
	case TimeModeHourly, TimeModeDaily, TimeModeWeekly:
		return m, nil
	case "":
		return TimeModeHourly, nil
	default:
		return "", fmt.Errorf("unsupported time mode %q", s)
	}
}

// DefectAreaRow counts one prefix of the defect-area hierarchy.
type DefectAreaRow struct {
	ID       string
	Area     string // DR_FRT
	FullPath string // DR > FRT
	Count    int
	Depth    int
}

type DetailLevel string

const (
	DetailTop  DetailLevel = "top"
	DetailMid  DetailLevel = "mid"
	DetailFull DetailLevel = "full"
)

func ParseDetailLevel(s string) (DetailLevel, error) {
	switch l := DetailLevel(s); l {
	case DetailTop, DetailMid, DetailFull:
		return l, nil
	case "":
		return DetailTop, nil
	default:
		return "", fmt.Errorf("unsupported detail level %q", s)
	}
}

// DefectAreaView is a defect-area row prepared for one chart detail level.
type DefectAreaView struct {
	Key         string
	DisplayName string
	Count       int
	Descendants int
	Details     string
}
