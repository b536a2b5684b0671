package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
)

const resampledSuffix = "_resampled.wav"

// Normalized describes the audio handed to the model.
type Normalized struct {
	// Path is the input path when Modified is false, else a new file the
	// caller must delete.
	Path     string
	Modified bool
	// Duration of the original clip in seconds.
	Duration       float64
	SourceRate     int
	SourceChannels int
}

// Normalizer brings clips to mono at the target frame rate.
type Normalizer struct {
	decoder    Decoder
	dir        string
	targetRate int
	log        *logger.Logger
}

// NewNormalizer creates a Normalizer writing normalized copies into dir.
func NewNormalizer(decoder Decoder, dir string, targetRate int) *Normalizer {
	if targetRate <= 0 {
		targetRate = TargetSampleRate
	}
	return &Normalizer{
		decoder:    decoder,
		dir:        dir,
		targetRate: targetRate,
		log:        logger.WithComponent("audio"),
	}
}

// Normalize loads path and returns mono audio at the target rate. The
// channel check runs before any resampling. Nothing is written when the
// input already matches.
func (n *Normalizer) Normalize(ctx context.Context, path string) (*Normalized, error) {
	name := filepath.Base(path)
	clip, err := n.decoder.Load(ctx, path)
	if err != nil {
		return nil, apperrors.InvalidAudio(name, err)
	}

	res := &Normalized{
		Path:           path,
		Duration:       clip.Duration(),
		SourceRate:     clip.FrameRate(),
		SourceChannels: clip.Channels(),
	}
	switch {
	case res.SourceChannels > 2:
		return nil, apperrors.UnsupportedChannelLayout(res.SourceChannels)
	case res.SourceChannels < 1:
		return nil, apperrors.InvalidAudio(name, fmt.Errorf("no audio channels"))
	}

	modified := false
	if res.SourceRate != n.targetRate {
		if err := clip.SetFrameRate(n.targetRate); err != nil {
			return nil, apperrors.ResampleFailed(n.targetRate, err)
		}
		modified = true
	}
	if res.SourceChannels == 2 {
		if err := clip.SetChannels(1); err != nil {
			return nil, apperrors.ChannelConversionFailed(err)
		}
		modified = true
	}

	fields := map[string]interface{}{
		logger.FieldFile:          name,
		logger.FieldSampleRate:    res.SourceRate,
		logger.FieldChannels:      res.SourceChannels,
		logger.FieldAudioDuration: res.Duration,
	}
	if !modified {
		n.log.WithContext(ctx).Debug("audio already normalized", fields)
		return res, nil
	}

	out := filepath.Join(n.dir, uuid.NewString()+resampledSuffix)
	if err := clip.Export(ctx, out); err != nil {
		if rmErr := os.Remove(out); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			n.log.WithContext(ctx).WithError(rmErr).Warn("failed to remove partial export", logger.Fields(logger.FieldPath, out))
		}
		return nil, apperrors.ExportFailed(err)
	}

	res.Path = out
	res.Modified = true
	fields[logger.FieldPath] = out
	n.log.WithContext(ctx).Debug("audio normalized", fields)
	return res, nil
}
