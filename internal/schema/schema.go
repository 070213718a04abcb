// Package schema wraps every persisted value in a versioned envelope.
//
// Values written before versioning was introduced are plain JSON documents.
// Decode reports them as version 0 so the owning store can migrate and
// rewrite them.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/repository"
)

// CurrentVersion is the envelope version written by Encode.
const CurrentVersion = 1

// LegacyVersion marks values stored without an envelope.
const LegacyVersion = 0

// QuarantineSuffix is appended to keys whose values could not be decoded.
const QuarantineSuffix = ".corrupt"

type envelope struct {
	Version *int            `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// Encode marshals value into a versioned entry for key.
func Encode(key string, value any) (repository.Entry, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return repository.Entry{}, fmt.Errorf("encode %s: %w", key, err)
	}
	version := CurrentVersion
	raw, err := json.Marshal(envelope{Version: &version, Data: data})
	if err != nil {
		return repository.Entry{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return repository.Entry{Key: key, Value: raw}, nil
}

// Decode unmarshals raw into dst and returns the version it was stored with.
func Decode(raw []byte, dst any) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, domainErrors.ErrCorruptValue
	}

	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Version != nil {
			if *env.Version != CurrentVersion {
				return *env.Version, fmt.Errorf("version %d: %w", *env.Version, domainErrors.ErrUnsupportedVersion)
			}
			if err := json.Unmarshal(env.Data, dst); err != nil {
				return *env.Version, fmt.Errorf("%w: %v", domainErrors.ErrCorruptValue, err)
			}
			return *env.Version, nil
		}
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		return LegacyVersion, fmt.Errorf("%w: %v", domainErrors.ErrCorruptValue, err)
	}
	return LegacyVersion, nil
}

// Quarantine returns the entry that preserves an undecodable value.
func Quarantine(key string, raw []byte) repository.Entry {
	return repository.Entry{Key: key + QuarantineSuffix, Value: raw}
}
