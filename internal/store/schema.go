package store

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"closures/backend/internal/domain"
)

// PresetSchemaVersion is the version of closure details written by this build.
//
//	1: first release; FIXED has no postponeBy, DURATIONAL may carry roundUpTo (minutes)
//	2: FIXED always carries postponeBy
//	3: both variants carry roundTo as a rounding unit name
const PresetSchemaVersion = 3

type presetUpgrade func(end map[string]any) error

var presetUpgrades = map[int]presetUpgrade{
	1: upgradeFixedPostpone,
	2: upgradeRoundTo,
}

// DecodeClosureDetails upgrades raw closure details stored at version to the
// current shape and decodes them.
func DecodeClosureDetails(version int, raw []byte) (domain.ClosureDetails, error) {
	if version < 1 {
		version = 1
	}
	if version > PresetSchemaVersion {
		return domain.ClosureDetails{}, fmt.Errorf("%w: %d", ErrUnsupportedSchemaVersion, version)
	}

	if version < PresetSchemaVersion {
		upgraded, err := UpgradeClosureDetails(version, raw)
		if err != nil {
			return domain.ClosureDetails{}, err
		}
		raw = upgraded
	}

	var details domain.ClosureDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return domain.ClosureDetails{}, fmt.Errorf("decode closure details: %w", err)
	}
	return details, nil
}

// UpgradeClosureDetails applies every upgrade step from version to the current
// schema and returns the re-encoded document.
func UpgradeClosureDetails(version int, raw []byte) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode closure details v%d: %w", version, err)
	}
	end, ok := doc["end"].(map[string]any)
	if !ok {
		return nil, errors.New("closure details have no end rule")
	}

	for v := version; v < PresetSchemaVersion; v++ {
		step, ok := presetUpgrades[v]
		if !ok {
			return nil, fmt.Errorf("%w: no upgrade from %d", ErrUnsupportedSchemaVersion, v)
		}
		if err := step(end); err != nil {
			return nil, fmt.Errorf("upgrade closure details v%d: %w", v, err)
		}
	}
	doc["end"] = end

	return json.Marshal(doc)
}

func upgradeFixedPostpone(end map[string]any) error {
	if end["type"] != string(domain.ClosureEndFixed) {
		return nil
	}
	if _, ok := end["postponeBy"]; !ok || end["postponeBy"] == nil {
		end["postponeBy"] = 0
	}
	return nil
}

func upgradeRoundTo(end map[string]any) error {
	if legacy, ok := end["roundUpTo"]; ok {
		delete(end, "roundUpTo")
		if _, has := end["roundTo"]; !has && legacy != nil {
			end["roundTo"] = legacy
		}
	}

	switch v := end["roundTo"].(type) {
	case nil:
		end["roundTo"] = string(domain.RoundNone)
	case float64:
		unit, err := domain.RoundToFromMinutes(int(v))
		if err != nil {
			return err
		}
		end["roundTo"] = string(unit)
	case string:
		if !domain.RoundTo(v).Valid() {
			return fmt.Errorf("unknown rounding unit %q", v)
		}
	default:
		return fmt.Errorf("unexpected roundTo value %v", v)
	}
	return nil
}

// EncodeClosureDetails returns details in the current schema together with
// the version to persist alongside them.
func EncodeClosureDetails(details domain.ClosureDetails) (int, []byte, error) {
	if details.End.RoundTo == "" {
		details.End.RoundTo = domain.RoundNone
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return 0, nil, fmt.Errorf("encode closure details: %w", err)
	}
	return PresetSchemaVersion, raw, nil
}
