package requirements

import (
	"strconv"
	"strings"

	"github.com/hypedmc/dungeon-api/internal/errors"
)

// Parse converts a requirement spec string into a Requirement. Supported
// forms:
//
//	level:<n>
//	completion:<templateId>:<n>
//	besttime:<templateId>:<millis>
//	achievement:<id>
//
// Parse is called once at template load time; a malformed spec fails the
// template load rather than surfacing later during evaluation.
func Parse(spec string) (Requirement, error) {
	parts := strings.Split(spec, ":")

	switch strings.ToLower(parts[0]) {
	case "level":
		if len(parts) != 2 {
			return nil, errors.InvalidArgumentf("requirement %q: want level:<n>", spec)
		}
		level, err := strconv.Atoi(parts[1])
		if err != nil || level < 1 {
			return nil, errors.InvalidArgumentf("requirement %q: bad level", spec)
		}
		return MinimumLevel{Level: level}, nil

	case "completion":
		if len(parts) != 3 {
			return nil, errors.InvalidArgumentf("requirement %q: want completion:<templateId>:<n>", spec)
		}
		count, err := strconv.Atoi(parts[2])
		if err != nil || count < 1 {
			return nil, errors.InvalidArgumentf("requirement %q: bad completion count", spec)
		}
		return MinimumCompletions{TemplateID: parts[1], Completions: count}, nil

	case "besttime":
		if len(parts) != 3 {
			return nil, errors.InvalidArgumentf("requirement %q: want besttime:<templateId>:<millis>", spec)
		}
		millis, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil || millis <= 0 {
			return nil, errors.InvalidArgumentf("requirement %q: bad time threshold", spec)
		}
		return BestTime{TemplateID: parts[1], ThresholdMillis: millis}, nil

	case "achievement":
		if len(parts) != 2 || parts[1] == "" {
			return nil, errors.InvalidArgumentf("requirement %q: want achievement:<id>", spec)
		}
		return HasAchievement{AchievementID: parts[1]}, nil

	default:
		return nil, errors.InvalidArgumentf("requirement %q: unknown type %q", spec, parts[0])
	}
}

// ParseAll parses a list of specs, failing on the first malformed entry
func ParseAll(specs []string) ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(specs))
	for _, spec := range specs {
		req, err := Parse(spec)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
